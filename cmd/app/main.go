package main

import (
	"context"
	"fmt"
	"os"

	adminservice "dashdrop/internal/admin-service"
	authservice "dashdrop/internal/auth-service"
	"dashdrop/internal/config"
	driverservice "dashdrop/internal/driver-service"
	"dashdrop/internal/mylogger"
	orderservice "dashdrop/internal/order-service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <auth-service|driver-service|order-service|admin-service>")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot create logger:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	service := os.Args[1]
	mylog = mylog.With("service", service)

	switch service {
	case "auth-service":
		err = authservice.Execute(ctx, mylog, cfg)
	case "driver-service":
		err = driverservice.Execute(ctx, mylog, cfg)
	case "order-service":
		err = orderservice.Execute(ctx, mylog, cfg)
	case "admin-service":
		err = adminservice.Execute(ctx, mylog, cfg)
	default:
		fmt.Fprintln(os.Stderr, "unknown service:", service)
		os.Exit(1)
	}

	if err != nil {
		mylog.Error("service exited with error", err)
		os.Exit(1)
	}
}
