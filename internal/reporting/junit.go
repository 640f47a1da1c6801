package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/athena-sanity/athena/internal/status"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one blueprint run.
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one processor.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a check that reported fail-severity findings.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents check logic that itself failed.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a processor that deliberately did not run.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// ConvertToJUnit converts a run report to JUnit XML format. Exception maps
// to <error>, Warning and Error map to <failure>, Skipped and Aborted map to
// <skipped> so non-execution stays distinguishable from breakage.
func ConvertToJUnit(report *Report) *JUnitTestSuites {
	durationSec := float64(report.DurationMs) / 1000.0

	suite := JUnitTestSuite{
		Name:      report.Blueprint,
		Tests:     report.Digest.Total,
		Failures:  report.Digest.Warning + report.Digest.Error,
		Errors:    report.Digest.Exception,
		Skipped:   report.Digest.Skipped + report.Digest.Aborted,
		Time:      durationSec,
		Timestamp: report.Timestamp.Format(time.RFC3339),
	}

	for _, pr := range report.Processors {
		suite.TestCases = append(suite.TestCases, convertProcessor(report.Blueprint, pr))
	}

	return &JUnitTestSuites{
		Tests:      report.Digest.Total,
		Failures:   suite.Failures,
		Errors:     suite.Errors,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertProcessor(blueprintName string, pr ProcessorReport) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      pr.Name,
		Classname: blueprintName,
		Time:      float64(pr.DurationMs) / 1000.0,
	}

	switch pr.Status {
	case status.Exception.Name():
		tc.Error = &JUnitError{
			Message: firstMessage(pr),
			Type:    "ProcessException",
			Body:    feedbackBody(pr),
		}
	case status.Skipped.Name():
		tc.Skipped = &JUnitSkipped{Message: pr.SkipReason}
	case status.Aborted.Name():
		tc.Skipped = &JUnitSkipped{Message: "aborted"}
	default:
		if st, ok := status.ByName(pr.Status); ok && st.IsFail() {
			tc.Failure = &JUnitFailure{
				Message: fmt.Sprintf("%s: %d finding(s)", pr.Name, len(pr.Feedback)),
				Type:    "CheckFailure",
				Body:    feedbackBody(pr),
			}
		}
	}

	return tc
}

func firstMessage(pr ProcessorReport) string {
	if len(pr.Feedback) > 0 {
		return pr.Feedback[0].Message
	}
	return pr.Name
}

func feedbackBody(pr ProcessorReport) string {
	var lines []string
	for _, fb := range pr.Feedback {
		if fb.Target != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", fb.Target, fb.Message))
			continue
		}
		lines = append(lines, fb.Message)
	}
	return strings.Join(lines, "\n")
}

// WriteJUnit serializes the report as JUnit XML to path.
func WriteJUnit(path string, report *Report) error {
	suites := ConvertToJUnit(report)
	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling junit: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	return os.WriteFile(path, out, 0o644)
}
