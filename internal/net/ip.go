package net

import (
	"fmt"
	"log"
	"net"
	"strconv"
)

// ShareAddress turns a listen address into the IP and port other machines
// should dial. Wildcard hosts are replaced with the outgoing interface IP.
func ShareAddress(addr string) (net.IP, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, 0, fmt.Errorf("bad listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, 0, fmt.Errorf("bad port in listen address %q", addr)
	}

	ip := net.ParseIP(host)
	if ip != nil && !ip.IsUnspecified() {
		return ip, port, nil
	}
	if ip == nil && host != "" {
		ips, err := net.LookupIP(host)
		if err != nil || len(ips) == 0 {
			return nil, 0, fmt.Errorf("could not resolve %q: %v", host, err)
		}
		return ips[0], port, nil
	}

	out, err := GetOutgoingIP()
	if err != nil {
		return nil, 0, err
	}
	return out, port, nil
}

// GetOutgoingIP finds the preferred local IP address to share.
func GetOutgoingIP() (net.IP, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet, fall back to checking local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP, nil
}

func getLocalIPFallback() (net.IP, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if v4 := ipnet.IP.To4(); v4 != nil {
				return v4, nil
			}
		}
	}
	log.Println("[MDNS] No suitable local IP found, falling back to loopback")
	return net.IPv4(127, 0, 0, 1), nil
}
