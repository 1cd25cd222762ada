package main

import (
	"context"
	"os/signal"
	"syscall"

	"pixrelay/cmd"
	"pixrelay/infra"
)

// @title Pix Webhook Relay
// @version 1.0
// @description Recebe webhooks Pix, valida, remapeia e encaminha para o callback interno.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	loadingEnv := infra.NewConfig()
	container := infra.NewContainerDI(loadingEnv)
	defer container.Close()

	cmd.StartAPI(ctx, container)
}
