// Package output provides structured output handling for the docgen CLI.
//
// Every command writes through a Printer so the same command serves a person
// at a terminal and a script reading JSON.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Template saved", "id": saved.ID})
//	printer.Error(err)
//	printer.Table([]string{"VARIABLE", "VALUE"}, rows)
//	printer.Preview(doc.Resolved, doc.Missing)
//
// # JSON Mode
//
// With --json, success data is written as an indented object and errors as
// {"error": "message", "code": N} on stdout.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, unknown template, invalid config
//	output.ExitSystemError // 2: storage or file system failure
//	output.ExitConflict    // 3: a saved template with that name exists
package output
