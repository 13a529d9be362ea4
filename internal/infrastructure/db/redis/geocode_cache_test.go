package redis

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/delivery-zones/internal/core/domain"
)

func TestCacheKey(t *testing.T) {
	if got := cacheKey("text:av corrientes 1234|caba"); got != "geocode:text:av corrientes 1234|caba" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeAddress(t *testing.T) {
	in := domain.ResolvedAddress{
		FormattedAddress: "Av. Corrientes 1234, CABA",
		Components:       domain.AddressComponents{City: "Buenos Aires", PostalCode: "C1043"},
		Coordinate:       domain.Coordinate{Lat: -34.6037, Lng: -58.3857},
		IsPartialMatch:   true,
		PlaceID:          "ChIJcorrientes1234",
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := decodeAddress(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *got != in {
		t.Fatalf("got %+v, want %+v", *got, in)
	}

	if _, err := decodeAddress([]byte("not json")); err == nil {
		t.Fatal("expected error for corrupt entry")
	}
}

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestGeocodeCache_UnreachableIsErrorNotMiss(t *testing.T) {
	c := NewGeocodeCache(unreachableClient(t))

	got, ok, err := c.Get(context.Background(), "text:x|")
	if err == nil {
		t.Fatal("expected error from unreachable redis")
	}
	if ok || got != nil {
		t.Fatalf("expected no value, got %v %v", got, ok)
	}
	if err := c.Put(context.Background(), "text:x|", &domain.ResolvedAddress{}, time.Minute); err == nil {
		t.Fatal("expected put error from unreachable redis")
	}
}

func TestGeocodeCache_PutNilIsNoop(t *testing.T) {
	c := NewGeocodeCache(unreachableClient(t))
	if err := c.Put(context.Background(), "k", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
