// Package errors provides the coded error type used across the craft service.
//
// Engine packages (quality, material, randompool, slots, recipe) never return
// errors: missing data degrades to "no effect". Errors appear at the edges,
// where assets are loaded, queues are persisted and requests are validated.
//
// # Basic Usage
//
//	err := errors.NotFoundf("recipe %s not found", id)
//	err := errors.InvalidArgumentf("amount must be positive, got %d", amount)
//
// Unknown asset paths carry a suggestion:
//
//	return errors.NotFoundf("asset %q not found", path).
//	    WithMeta(errors.MetaAssetPath, path).
//	    WithSuggestion(closest)
//
// Wrapping keeps the original code:
//
//	if err := r.queueRepo.Update(ctx, entry); err != nil {
//	    return errors.Wrap(err, "failed to persist queue entry")
//	}
//
// # Validation
//
// Component configs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Registry == nil {
//	    vb.RequiredField("Registry")
//	}
//	return vb.Build()
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients recover the coded error,
// metadata included, with errors.FromGRPCError.
//
// Layer guidelines:
//   - Repositories return NotFound / AlreadyExists and wrap driver errors.
//   - Orchestrators validate input (InvalidArgument) and station state (FailedPrecondition).
//   - Handlers convert to gRPC status.
package errors
