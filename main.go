package main

import (
	"github.com/alecthomas/kong"

	"github.com/rehiy/web-radio/config"
)

type cli struct {
	config.Globals `embed:""`

	Serve serveCmd `cmd:"" default:"withargs" help:"Run the web console (default)."`
	Ports portsCmd `cmd:"" help:"List serial ports on this host."`
	Poll  pollCmd  `cmd:"" help:"Poll device status once and print it."`
	Send  sendCmd  `cmd:"" help:"Send a raw hex command to the device."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("web-radio"),
		kong.Description("Serial status console for hex-command radio modules."),
		kong.UsageOnError(),
	)

	c.Globals.Apply()
	ctx.FatalIfErrorf(ctx.Run(&c.Globals))
}
