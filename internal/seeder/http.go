package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/pkg/logger"
)

// client wraps http.Client with the base URL and bearer token.
type client struct {
	http    *http.Client
	baseURL string
	token   string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// envelope mirrors the service's uniform response shape.
type envelope struct {
	StatusCode int             `json:"status_code"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (c *client) do(ctx context.Context, method, path string, body any) (int, envelope, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, envelope{}, fmt.Errorf("marshal request body: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return 0, envelope{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, envelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, envelope{}, fmt.Errorf("read response body: %w", err)
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return resp.StatusCode, envelope{}, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, env, nil
}

// unmarshalData extracts one named object from an envelope's data field.
func unmarshalData(env envelope, key string, v any) error {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	raw, ok := data[key]
	if !ok {
		return fmt.Errorf("response data missing %q", key)
	}
	return json.Unmarshal(raw, v)
}

// authenticate obtains a bearer token, registering the account first and
// falling back to login when it already exists.
func (c *client) authenticate(ctx context.Context, email, password string) error {
	creds := map[string]string{"email": email, "password": password}

	status, env, err := c.do(ctx, http.MethodPost, "/api/auth/register", creds)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if status == http.StatusCreated {
		return unmarshalData(env, "token", &c.token)
	}

	status, env, err = c.do(ctx, http.MethodPost, "/api/auth/login", creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", status, env.Message)
	}
	return unmarshalData(env, "token", &c.token)
}

// health verifies the service is reachable.
func (c *client) health(ctx context.Context) error {
	status, _, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", status)
	}
	return nil
}

func (c *client) createInstitute(ctx context.Context, in model.InstituteInput) (model.Institute, error) {
	var out model.Institute
	status, env, err := c.do(ctx, http.MethodPost, "/api/institutes", in)
	if err != nil {
		return out, err
	}
	if status != http.StatusCreated {
		return out, fmt.Errorf("create institute %s failed with status %d: %s", in.Code, status, env.Message)
	}
	return out, unmarshalData(env, "institute", &out)
}

func (c *client) createStudent(ctx context.Context, in model.StudentInput) (model.Student, error) {
	var out model.Student
	status, env, err := c.do(ctx, http.MethodPost, "/api/students", in)
	if err != nil {
		return out, err
	}
	if status != http.StatusCreated {
		return out, fmt.Errorf("create student %s failed with status %d: %s", in.Email, status, env.Message)
	}
	return out, unmarshalData(env, "student", &out)
}

func (c *client) createCourse(ctx context.Context, in model.CourseInput) (model.Course, error) {
	var out model.Course
	status, env, err := c.do(ctx, http.MethodPost, "/api/courses", in)
	if err != nil {
		return out, err
	}
	if status != http.StatusCreated {
		return out, fmt.Errorf("create course %s failed with status %d: %s", in.Code, status, env.Message)
	}
	return out, unmarshalData(env, "course", &out)
}

// submitResults pushes score submissions through a worker pool and tallies
// outcomes by response status.
func submitResults(ctx context.Context, cfg *Config, c *client, inputs []model.ScoreRecordInput, stats *Stats) error {
	log := logger.Named("seeder")
	log.Info(ctx, "submitting results",
		logger.Int("count", len(inputs)),
		logger.Int("workers", cfg.Workers),
	)

	var (
		successful int64
		duplicate  int64
		failed     int64
	)

	inputChan := make(chan model.ScoreRecordInput, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range inputChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				status, env, err := c.do(ctx, http.MethodPost, "/api/results", in)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
				case status == http.StatusCreated:
					atomic.AddInt64(&successful, 1)
				case status == http.StatusBadRequest && env.Message != "":
					// The only expected 400 on generated data is the
					// composite-key duplicate rejection.
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "result submission rejected",
							logger.Int("status", status),
							logger.String("message", env.Message),
						)
					}
				}
			}
		}()
	}

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			close(inputChan)
			wg.Wait()
			return ctx.Err()
		case inputChan <- in:
		}
	}
	close(inputChan)
	wg.Wait()

	stats.ResultsSubmitted = len(inputs)
	stats.ResultsSuccessful = int(atomic.LoadInt64(&successful))
	stats.ResultsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.ResultsFailed = int(atomic.LoadInt64(&failed))

	log.Info(ctx, "result submission completed",
		logger.Int("successful", stats.ResultsSuccessful),
		logger.Int("duplicate", stats.ResultsDuplicate),
		logger.Int("failed", stats.ResultsFailed),
	)
	return nil
}
