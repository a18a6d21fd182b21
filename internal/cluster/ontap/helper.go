package ontap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/gophercloud/gophercloud/v2"
)

// executeCall runs one management-plane operation under the per-call timeout.
//
// Operations are attempted exactly once. Failures are normalized into the
// cluster error taxonomy:
//   - HTTP 404 becomes the supplied NotFoundError (when missing is non-nil).
//   - A NotFoundError returned by the operation itself is passed through.
//   - Everything else, including timeouts, becomes a TransportError.
func (c *Client) executeCall(ctx context.Context, opName string, missing *cluster.NotFoundError, operation func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.OperationTimeout)
	defer cancel()

	start := time.Now()
	err := operation(ctx)
	slog.Debug("ONTAP call finished", "operation", opName, "cluster", c.Name(), "duration", time.Since(start), "error", err)
	if err == nil {
		return nil
	}

	var nf *cluster.NotFoundError
	if errors.As(err, &nf) {
		return err
	}

	var respErr gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &respErr) {
		if respErr.Actual == http.StatusNotFound && missing != nil {
			return missing
		}
		return &cluster.TransportError{
			Op:  opName,
			Err: fmt.Errorf("HTTP %d: %s", respErr.Actual, apiErrorMessage(respErr.Body)),
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &cluster.TransportError{
			Op:  opName,
			Err: fmt.Errorf("timed out after %s: %w", c.Timeouts.OperationTimeout, err),
		}
	}

	return &cluster.TransportError{Op: opName, Err: err}
}

// apiErrorMessage extracts the ONTAP error message from a response body.
func apiErrorMessage(body []byte) string {
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		if payload.Error.Code != "" {
			return fmt.Sprintf("%s (code %s)", payload.Error.Message, payload.Error.Code)
		}
		return payload.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	return text
}

// waitForJob blocks until an asynchronous cluster job reaches a terminal state.
//
// Behavior:
//   - A nil job means the request completed synchronously.
//   - Job status is polled every JobPollInterval until "success" or "failure",
//     or until JobTimeout expires.
//   - A "failure" job is reported as a TransportError carrying the job message.
func (c *Client) waitForJob(ctx context.Context, opName string, job *jobLink) error {
	if job == nil || job.UUID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeouts.JobTimeout)
	defer cancel()

	jobURL := c.service.ServiceURL("cluster", "jobs", job.UUID)
	if job.Links.Self.Href != "" {
		jobURL = c.absoluteURL(job.Links.Self.Href)
	}
	if q, err := gophercloud.BuildQueryString(fieldsQuery{Fields: jobFields}); err == nil && !strings.Contains(jobURL, "?") {
		jobURL += q.String()
	}

	for {
		var record jobRecord
		err := c.executeCall(ctx, opName+"/job", &cluster.NotFoundError{Resource: "job", Name: job.UUID}, func(innerCtx context.Context) error {
			_, err := c.service.Get(innerCtx, jobURL, &record, nil)
			return err
		})
		if err != nil {
			return err
		}

		switch record.State {
		case "success":
			slog.Debug("Cluster job completed", "operation", opName, "job_uuid", job.UUID, "message", record.Message)
			return nil
		case "failure":
			return &cluster.TransportError{
				Op:  opName,
				Err: fmt.Errorf("job %s failed: %s (code %d)", job.UUID, record.Message, record.Code),
			}
		}

		slog.Debug("Waiting for cluster job", "operation", opName, "job_uuid", job.UUID, "state", record.State)

		select {
		case <-time.After(c.Timeouts.JobPollInterval):
		case <-ctx.Done():
			return &cluster.TransportError{
				Op:  opName,
				Err: fmt.Errorf("job %s did not finish within %s: %w", job.UUID, c.Timeouts.JobTimeout, ctx.Err()),
			}
		}
	}
}
