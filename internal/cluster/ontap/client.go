package ontap

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/gophercloud/gophercloud/v2"
)

// Client manages the session to one ONTAP cluster management endpoint.
// It reuses gophercloud's JSON request plumbing against the ONTAP REST API
// with HTTP basic authentication.
type Client struct {
	// Profile carries the address and credentials of the cluster.
	Profile cluster.Profile
	// Timeouts bounds every call and every job wait.
	Timeouts cluster.TimeoutConfig

	// ClusterName and Version are learned while connecting.
	ClusterName string
	Version     string

	baseURL string
	service *gophercloud.ServiceClient
}

var _ cluster.Client = &Client{}

// Name returns the profile name (or address) used to reach the cluster.
func (c *Client) Name() string {
	if c.Profile.Name != "" {
		return c.Profile.Name
	}
	return c.Profile.Address
}

// NewClient prepares the REST service client and validates the credentials
// with a single cluster identity read.
func (c *Client) NewClient(ctx context.Context) error {
	slog.Debug("Initializing ONTAP client", "cluster", c.Name(), "address", c.Profile.Address)

	if c.Profile.Address == "" {
		return fmt.Errorf("cluster address is empty")
	}
	if c.Timeouts.OperationTimeout <= 0 {
		c.Timeouts = cluster.DefaultTimeoutConfig()
	}

	// 1. Transport
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: c.Profile.Insecure, //nolint:gosec // operator opt-in for self-signed cluster certificates
	}

	provider := &gophercloud.ProviderClient{
		HTTPClient: http.Client{Transport: transport},
	}
	provider.UserAgent.Prepend("snapoptimize")

	c.baseURL = normalizeBaseURL(c.Profile.Address)

	// 2. Service client with basic auth on every request
	credentials := base64.StdEncoding.EncodeToString([]byte(c.Profile.Username + ":" + c.Profile.Password))
	c.service = &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       c.baseURL + "/api/",
		MoreHeaders: map[string]string{
			"Authorization": "Basic " + credentials,
		},
	}

	// 3. Verify the session
	var identity clusterRecord
	err := c.executeCall(ctx, "GetClusterIdentity", nil, func(innerCtx context.Context) error {
		url, err := c.queryURL(fieldsQuery{Fields: clusterFields}, "cluster")
		if err != nil {
			return err
		}
		_, err = c.service.Get(innerCtx, url, &identity, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("connecting to cluster '%s' failed: %w", c.Name(), err)
	}

	c.ClusterName = identity.Name
	c.Version = identity.Version.Full
	slog.Debug("ONTAP session established", "cluster", c.Name(), "cluster_name", c.ClusterName, "version", c.Version)

	return nil
}

// normalizeBaseURL accepts a bare host, host:port or full URL.
func normalizeBaseURL(address string) string {
	address = strings.TrimRight(strings.TrimSpace(address), "/")
	address = strings.TrimSuffix(address, "/api")
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "https://" + address
	}
	return address
}

// queryURL builds an endpoint URL from path parts plus encoded query options.
func (c *Client) queryURL(opts any, parts ...string) (string, error) {
	q, err := gophercloud.BuildQueryString(opts)
	if err != nil {
		return "", err
	}
	return c.service.ServiceURL(parts...) + q.String(), nil
}

// absoluteURL resolves a "_links" href ("/api/...") against the cluster address.
func (c *Client) absoluteURL(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return c.baseURL + link
}
