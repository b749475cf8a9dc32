package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
)

// ---- grpc dial ----

// shareTokenHeader must match the server's guest credential header.
const shareTokenHeader = "x-share-token"

type bearerCreds struct {
	token  string
	secure bool
}

func (b bearerCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}
func (b bearerCreds) RequireTransportSecurity() bool { return b.secure }

type shareCreds struct {
	token  string
	secure bool
}

func (s shareCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{shareTokenHeader: s.token}, nil
}
func (s shareCreds) RequireTransportSecurity() bool { return s.secure }

type transport struct {
	addr      string
	caPath    string
	insecure  bool
	plaintext bool
}

func (t transport) credentials() (credentials.TransportCredentials, error) {
	if t.plaintext {
		return insecure.NewCredentials(), nil
	}
	if t.insecure {
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil
	}
	if t.caPath == "" {
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(t.caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

// dial connects to the server; perRPC may be nil for public calls.
func (t transport) dial(perRPC credentials.PerRPCCredentials) (*grpc.ClientConn, pb.FlightTrackerClient, error) {
	creds, err := t.credentials()
	if err != nil {
		return nil, nil, err
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if perRPC != nil {
		opts = append(opts, grpc.WithPerRPCCredentials(perRPC))
	}
	cc, err := grpc.NewClient(t.addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cc, pb.NewFlightTrackerClient(cc), nil
}
