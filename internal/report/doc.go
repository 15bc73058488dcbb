// Package report renders a crack run (model.BatchReport) as human readable
// text, JSON or GitHub flavored Markdown.
//
// All writers implement Writer, so the CLI can pick one by flag and combine
// several with MultiWriter (for example stdout plus a report file).
package report
