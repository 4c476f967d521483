// Package submission performs the single external call behind a form submit
// and reduces its outcome to a Result. A failure carries the human readable
// message extracted from the remote error envelope when one exists; a failure
// without a message is a first-class case that callers must not replace with
// generic text.
package submission
