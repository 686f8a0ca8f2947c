// Package errors provides the structured error type used across osrs-items.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.NotFoundf("item %d not found", id)
//	err := errors.ShapeMismatch("equipment must be an object").
//	    WithMeta("item_id", id)
//
// Wrapping keeps the original code:
//
//	if err := record.ExportJSON(pretty, dir); err != nil {
//	    return errors.Wrapf(err, "failed to save item %d", record.ID)
//	}
//
// Filesystem failures are tagged explicitly:
//
//	if err := os.WriteFile(path, data, 0o644); err != nil {
//	    return errors.IOFailuref(err, "failed to write %s", path)
//	}
//
// # Error Kinds
//
// Decoding item JSON produces ShapeMismatch errors. The builder collects every
// offending key before failing so a record is rejected as a whole:
//
//	sb := errors.NewShapeBuilder()
//	sb.Field("equipment", "is required when equipable_by_player is true")
//	if err := sb.Build(); err != nil {
//	    return nil, err
//	}
//
// errors.FieldErrors(err) returns the collected key → messages map.
//
// Export and repository operations produce IOFailure for read/write problems
// and NotFound for missing records. Configuration checks use
// NewValidationBuilder and produce InvalidArgument.
//
// # Error Codes
//
//   - InvalidArgument: Invalid input provided
//   - NotFound: Resource not found
//   - AlreadyExists: Resource already exists
//   - FailedPrecondition: Operation requirements not met
//   - Internal: Internal error
//   - ShapeMismatch: Input keys or value types do not fit the target structure
//   - IOFailure: Filesystem read or write failed
package errors
