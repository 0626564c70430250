/*
Package cli provides command-line helpers for the edmval command.

Output Formatting:

Validation reports, report history and the error code catalog can be
printed as text, JSON or CSV:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, reports); err != nil {
		return err
	}

The text formatter prints every finding of a report on its own line,
prefixed with its source location when known. With Summary set it prints
one line per report instead, as used by the history command.

Progress Reporting:

Batch validation of independent models reports progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(files)))
	// progress.Increment() after each model
	progress.Finish()

Exit Codes:

ExitCode maps command errors to process exit codes: 0 on success, 1 when
a model is invalid (ErrInvalidModel) and 2 for every other failure.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
