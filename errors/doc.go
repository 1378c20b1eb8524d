/*
Package errors provides semantic error types for the healthprofile module.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrRead         = errors.New("profile read failed")
	    ErrIO           = errors.New("profile i/o failed")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	stats, err := p.ImportRecords(onRecord)
	if err != nil {
	    if errors.IsRead(err) {
	        // The document is missing or not well-formed
	        return fmt.Errorf("profile %s is unreadable: %w", p.FileName(), err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewReadError("/data/export.json", cause)
	err := errors.NewIOError("remove", "/data/export.json", cause)
	err := errors.NewValidationError("sdate", "must be a number")

ReadError and IOError wrap their cause, so errors.Is also matches the
underlying error (for example fs.ErrNotExist).
*/
package errors
