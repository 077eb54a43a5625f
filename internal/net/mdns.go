package net

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service pixel flood servers announce themselves as.
const ServiceType = "_pixelflood._tcp"

// Advertise announces a server listening on addr to the local network.
// The caller shuts the returned server down when done.
func Advertise(addr string, width, height int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	ip, port, err := ShareAddress(addr)
	if err != nil {
		return nil, err
	}
	if ip.IsLoopback() {
		log.Printf("[MDNS] Advertising loopback address %s, only local clients can connect", ip)
	}

	info := []string{"PixelFlood", fmt.Sprintf("size=%dx%d", width, height)}

	service, err := mdns.NewMDNSService(
		host,
		ServiceType,
		"",
		"",
		port,
		[]net.IP{ip},
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[MDNS] Advertising %s as %s on %s:%d", ServiceType, host, ip, port)
	return server, nil
}

// Browse looks for advertised servers for the given duration and calls found
// with each one's host:port and TXT info.
func Browse(timeout time.Duration, found func(addr string, info []string)) error {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)), e.InfoFields)
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS lookup failed: %w", err)
	}
	return nil
}
