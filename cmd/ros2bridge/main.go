// Command ros2bridge relays messages from the configured source topic to the
// configured destination topic. All settings come from the environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/drblury/ros2bridge"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := ros2bridge.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := ros2bridge.NewLogger(os.Stdout, conf.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := ros2bridge.Init(ctx, conf, logger, ros2bridge.ServiceDependencies{})
	if err != nil {
		logger.Error("Failed to set up ROS2 bridge", err, ros2bridge.LogFields{"config": conf.String()})
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close transports", err, nil)
		}
	}()

	if err := svc.Run(ctx); err != nil {
		logger.Error("ROS2 bridge stopped", err, nil)
		return err
	}

	ros2bridge.Idle(ctx)
	return nil
}
