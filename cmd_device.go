package main

import (
	"fmt"

	"github.com/rehiy/web-radio/config"
	"github.com/rehiy/web-radio/protocol"
	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

type portsCmd struct {
	Detail bool `short:"d" help:"Show USB details."`
}

func (p *portsCmd) Run(g *config.Globals) error {
	registry := transport.NewRegistry()
	if p.Detail {
		details, err := registry.Details()
		if err != nil {
			return err
		}
		fmt.Print(renderPortDetails(details))
		return nil
	}

	ports, err := registry.ListPorts()
	if err != nil {
		return err
	}
	fmt.Print(renderPorts(ports))
	return nil
}

type pollCmd struct {
	Port string `arg:"" help:"Serial port name."`
}

func (p *pollCmd) Run(g *config.Globals) error {
	ds, err := openDevice(p.Port, g)
	if err != nil {
		return err
	}
	defer ds.Close()

	snap, err := ds.Poll()
	if err != nil {
		return err
	}
	fmt.Print(renderSnapshot(snap))
	if n := len(snap.Errors); n > 0 {
		return fmt.Errorf("%d of %d commands failed", n, len(protocol.StatusCommands))
	}
	return nil
}

type sendCmd struct {
	Port string `arg:"" help:"Serial port name."`
	Hex  string `arg:"" help:"Command bytes as hex, e.g. C1C1C1."`
}

func (s *sendCmd) Run(g *config.Globals) error {
	ds, err := openDevice(s.Port, g)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.SendRaw(s.Hex); err != nil {
		return err
	}
	fmt.Println(styles.Success.Render("sent ") + s.Hex)
	return nil
}

func openDevice(port string, g *config.Globals) (*service.DeviceService, error) {
	ds := service.NewDeviceService(service.Options{
		Transport: transport.NewSerial(),
		Ports:     transport.NewRegistry(),
		Events:    service.NewEventHub(),
		Baud:      g.Baud,
		Settle:    g.Settle,
	})
	if err := ds.Open(port, g.Baud); err != nil {
		return nil, err
	}
	return ds, nil
}
