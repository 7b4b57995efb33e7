// Package validation checks linqkit settings and call arguments.
//
// Struct tag validation backs configuration loading and reports
// INVALID_CONFIG. Args backs argument checks and reports INVALID_ARGUMENT.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Isolation string `mapstructure:"isolation" validate:"oneof=aliasing snapshot"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	args := validation.NewArgs().
//	    Required("name", name).
//	    MaxLength("name", name, 128).
//	    OptionalUUID("run_id", runID)
//	if err := args.Validate(); err != nil { ... }
package validation
