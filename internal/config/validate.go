package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.APIKeyHash != "" && !strings.HasPrefix(c.Auth.APIKeyHash, "$2") {
		return fmt.Errorf("auth.api_key_hash must be a bcrypt hash")
	}

	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := c.Redis.validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.Dispatch.validate(); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	return nil
}

func (e *EngineConfig) validate() error {
	if e.ClassifyBatchLimit <= 0 {
		return fmt.Errorf("classify_batch_limit must be > 0 (got %d)", e.ClassifyBatchLimit)
	}
	if e.CandidateCap <= 0 {
		return fmt.Errorf("candidate_cap must be > 0 (got %d)", e.CandidateCap)
	}
	if e.ExecuteBatchLimit <= 0 {
		return fmt.Errorf("execute_batch_limit must be > 0 (got %d)", e.ExecuteBatchLimit)
	}
	if e.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", e.Workers)
	}
	if e.ApprovalThreshold < 1 || e.ApprovalThreshold > 11 {
		return fmt.Errorf("approval_threshold must be in [1, 11] (got %d)", e.ApprovalThreshold)
	}
	if e.AtRiskThreshold < 0 || e.AtRiskThreshold > 100 {
		return fmt.Errorf("at_risk_threshold must be in [0, 100] (got %d)", e.AtRiskThreshold)
	}
	if e.PassTimeout <= 0 {
		return fmt.Errorf("pass_timeout must be > 0 (got %s)", e.PassTimeout)
	}
	return nil
}

// Held locks are renewed every lock_ttl/3, so the TTL bounds how long a
// crashed holder blocks others, not how long a pass may run.
func (r *RedisConfig) validate() error {
	if !r.Enabled() {
		return nil
	}
	if r.LockTTL < 3*time.Second {
		return fmt.Errorf("lock_ttl must be >= 3s (got %s)", r.LockTTL)
	}
	return nil
}

func (d *DispatchConfig) validate() error {
	if d.DMSenderUserID != "" {
		if _, err := uuid.Parse(d.DMSenderUserID); err != nil {
			return fmt.Errorf("dm_sender_user_id: %w", err)
		}
	}
	if d.RatePerSecond <= 0 {
		return fmt.Errorf("rate_per_second must be > 0 (got %v)", d.RatePerSecond)
	}
	if d.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", d.Burst)
	}
	return nil
}

func (s *SchedulerConfig) validate() error {
	specs := map[string]string{
		"classify_cron": s.ClassifyCron,
		"evaluate_cron": s.EvaluateCron,
		"execute_cron":  s.ExecuteCron,
		"expire_cron":   s.ExpireCron,
	}
	for name, spec := range specs {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
