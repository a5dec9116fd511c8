// Package pathutil validates file paths that oasmodels writes to.
//
// [SanitizeOutputPath] cleans an output path and rejects symlinks:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err // symlink detected
//	}
//
// [CheckOverwrite] refuses an output path that names one of the inputs, so a
// manifest is never replaced by the models read from it.
package pathutil
