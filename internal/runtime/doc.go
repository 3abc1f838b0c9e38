/*
Package runtime wires the bridge together and drives its lifecycle.

# Lifecycle

A bridge process goes through three explicit phases:

  - Init resolves the logical topic names, sanitizes the source topic,
    builds the source subscriber and destination publisher from the
    transport registry, and prepares the bridge loop. Any failure here is a
    setup error and the process should exit non-zero.
  - Run subscribes to the source topic and relays messages until the source
    stream ends. Per-message failures are logged and never end Run.
  - Idle blocks until the process is asked to shut down.

# Sub-packages

  - config/: environment configuration with validation
  - errors/: sentinel errors and error types
  - ids/: ULID generation for message and node ids
  - jsoncodec/: JSON marshaling utilities
  - logging/: logger interface and adapters
  - metadata/: message metadata utilities
  - transport/: role-aware transport factory over the transport registry

# Usage Example

	conf, err := config.Load()
	if err != nil {
		return err
	}
	svc, err := runtime.Init(ctx, conf, logger, runtime.ServiceDependencies{})
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.Run(ctx); err != nil {
		return err
	}
	runtime.Idle(ctx)
*/
package runtime
