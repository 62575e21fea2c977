// Package logging builds the zerolog logger used across churnlab and carries
// it, together with a per-invocation trace id, through context.Context.
//
// Components obtain their logger with FromContext and tag every event with a
// "component" field:
//
//	log := logging.FromContext(ctx)
//	log.Info().Ctx(ctx).Str("component", "notebook").Msg("executing notebook")
package logging
