package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Comment fields.
	FieldCommentID   = "comment_id"
	FieldCommentType = "comment_type"
	FieldComments    = "comments"
	FieldDropped     = "dropped"
	FieldStart       = "start"
	FieldEnd         = "end"

	// Render correspondence fields.
	FieldElements = "elements"
	FieldRanges   = "ranges"
	FieldIndex    = "index"
	FieldRendered = "rendered"
	FieldExpected = "expected"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldPolicy = "collapse_policy"
	FieldBackup = "backup"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
