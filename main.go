package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"PixelFlood/internal/export"
	pfnet "PixelFlood/internal/net"
	"PixelFlood/internal/state"
	"PixelFlood/internal/ui"

	"github.com/spf13/cobra"
)

type hostOptions struct {
	listen   string
	width    int
	height   int
	mdns     bool
	viewer   string
	snapshot string
	every    time.Duration
	window   bool
	frame    time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := hostOptions{}
	root := &cobra.Command{
		Use:          "pixelflood",
		Short:        "Shared pixel canvas that clients paint on over TCP",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd.Context(), opts)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.listen, "listen", "l", pfnet.DefaultAddress, "address to accept clients on")
	flags.IntVar(&opts.width, "width", pfnet.DefaultWidth, "canvas width in pixels")
	flags.IntVar(&opts.height, "height", pfnet.DefaultHeight, "canvas height in pixels")
	flags.BoolVar(&opts.mdns, "mdns", false, "advertise the server on the local network")
	flags.StringVar(&opts.viewer, "viewer", "", "serve /snapshot.png and a /ws frame stream on this address")
	flags.StringVar(&opts.snapshot, "snapshot", "", "periodically save the canvas to this .png or .pdf file")
	flags.DurationVar(&opts.every, "snapshot-interval", 10*time.Second, "time between snapshot files")
	flags.BoolVar(&opts.window, "window", false, "show the canvas in a desktop window")
	flags.DurationVar(&opts.frame, "frame-interval", 50*time.Millisecond, "refresh period of the window and viewer stream")

	root.AddCommand(newDiscoverCmd())
	return root
}

func newDiscoverCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List pixel flood servers advertised on the local network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := 0
			err := pfnet.Browse(timeout, func(addr string, info []string) {
				found++
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", addr, strings.Join(info, " "))
			})
			if err != nil {
				return err
			}
			if found == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no servers found")
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "how long to listen for answers")
	return cmd
}

func runHost(parent context.Context, opts hostOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", opts.width, opts.height)
	}
	if opts.every <= 0 {
		return fmt.Errorf("invalid snapshot interval %s", opts.every)
	}
	if opts.frame <= 0 {
		return fmt.Errorf("invalid frame interval %s", opts.frame)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Starting as HOST")
	cfg := pfnet.DefaultConfig()
	cfg.Address = opts.listen
	cfg.Width = opts.width
	cfg.Height = opts.height

	canvas := state.NewCanvas(cfg.Width, cfg.Height)
	listener := pfnet.NewListener(canvas, cfg)

	if opts.mdns {
		server, err := pfnet.Advertise(cfg.Address, cfg.Width, cfg.Height)
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	if opts.snapshot != "" {
		s := &export.Snapshotter{Path: opts.snapshot, Interval: opts.every, Canvas: canvas}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run(ctx)
		}()
	}

	if opts.viewer != "" {
		feed := pfnet.NewFeed(canvas, opts.frame)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := feed.ListenAndServe(ctx, opts.viewer); err != nil {
				log.Printf("[FEED] %v", err)
			}
		}()
	}

	if !opts.window {
		err := listener.ListenAndServe(ctx)
		cancel()
		return err
	}

	// The window owns the main goroutine; the listener runs beside it and
	// closing either one stops the other.
	errc := make(chan error, 1)
	go func() {
		errc <- listener.ListenAndServe(ctx)
		cancel()
	}()
	ui.RunWindow(ctx, canvas, "Pixel Flood", opts.frame)
	cancel()
	return <-errc
}
