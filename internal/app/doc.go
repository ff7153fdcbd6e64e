// Package app wires the report tool together: configuration, logging,
// telemetry, the report service and its sinks.
//
// # Initialization Flow
//
//	1. Validate the loaded configuration
//	2. Initialize logging and OpenTelemetry
//	3. Create the report service with its metrics and tracer
//	4. Open the sinks named by the configuration on Run
//	5. Flush telemetry and close the log file on Stop
//
// # Usage
//
//	application, err := app.NewApplication(cfg, os.Stdout)
//	if err != nil {
//		return err
//	}
//	defer application.Stop(context.Background())
//	summary, err := application.Run(ctx)
package app
