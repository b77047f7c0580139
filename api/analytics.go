package api

import (
	"context"
	"log"
	"net"

	"github.com/saeidalz13/battleship-twist/db/sqlc"
	"github.com/sqlc-dev/pqtype"
)

// Analytics counts table activity per server address. Failures are
// logged and never reach the player.
type Analytics interface {
	IncrementMatchesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error
	IncrementMatchesSavedCount(ctx context.Context, serverIpNet pqtype.Inet) error
}

var _ Analytics = (*sqlc.AnalyticsManager)(nil)

func serverIpNet(localAddr string) (pqtype.Inet, error) {
	host, _, err := net.SplitHostPort(localAddr)
	if err != nil {
		return pqtype.Inet{}, err
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return pqtype.Inet{}, &net.ParseError{Type: "IP address", Text: host}
	}

	mask := net.CIDRMask(128, 128)
	if ip4 := parsedIP.To4(); ip4 != nil {
		parsedIP = ip4
		mask = net.CIDRMask(32, 32)
	}
	return pqtype.Inet{IPNet: net.IPNet{IP: parsedIP, Mask: mask}, Valid: true}, nil
}

func (rp *RequestProcessor) countMatchCreated(ipNet pqtype.Inet) {
	if rp.analytics == nil {
		return
	}
	count(ipNet, rp.analytics.IncrementMatchesCreatedCount)
}

func (rp *RequestProcessor) countMatchSaved(ipNet pqtype.Inet) {
	if rp.analytics == nil {
		return
	}
	count(ipNet, rp.analytics.IncrementMatchesSavedCount)
}

func count(ipNet pqtype.Inet, increment func(context.Context, pqtype.Inet) error) {
	if !ipNet.Valid {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()
	if err := increment(ctx, ipNet); err != nil {
		// for now not killing the table for it
		log.Println(err)
	}
}
