// Package prompt runs the interactive question groups that populate the
// Configuration Model. Groups run strictly one after another; each commits its
// answers to an answers.Builder before the next one starts, and a group may be
// skipped based on earlier answers.
//
// Terminal I/O sits behind the Driver interface. The production driver is
// backed by survey; Script replays canned answers for tests and automation.
package prompt
