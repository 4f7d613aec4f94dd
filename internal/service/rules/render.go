package rules

import (
	"strconv"
	"strings"
	"sync"

	"github.com/heartmarshall/learning-oracle/internal/domain"
	"github.com/osteele/liquid"
)

// Renderer renders action subjects and bodies as Liquid templates.
// Parsed templates are cached by source.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewRenderer creates a Renderer with the oracle filters registered.
func NewRenderer() *Renderer {
	engine := liquid.NewEngine()

	// {{ user.name | first_name }}
	engine.RegisterFilter("first_name", func(s string) string {
		if f := strings.Fields(s); len(f) > 0 {
			return f[0]
		}
		return s
	})
	// {{ segment.churn_risk | percent }}
	engine.RegisterFilter("percent", func(v int) string {
		return strconv.Itoa(v) + "%"
	})

	return &Renderer{engine: engine}
}

// Parse compiles src and reports syntax errors.
func (r *Renderer) Parse(src string) error {
	_, err := r.template(src)
	return err
}

// Render executes src against bindings.
func (r *Renderer) Render(src string, bindings map[string]any) (string, error) {
	tpl, err := r.template(src)
	if err != nil {
		return "", err
	}
	out, rerr := tpl.RenderString(bindings)
	if rerr != nil {
		return "", rerr
	}
	return out, nil
}

func (r *Renderer) template(src string) (*liquid.Template, error) {
	if cached, ok := r.cache.Load(src); ok {
		return cached.(*liquid.Template), nil
	}
	tpl, err := r.engine.ParseString(src)
	if err != nil {
		return nil, err
	}
	r.cache.Store(src, tpl)
	return tpl, nil
}

// Bindings builds the template variables for one rule and user.
func Bindings(rule *domain.Rule, user *domain.UserProfile, seg *domain.Segment) map[string]any {
	b := map[string]any{
		"rule": map[string]any{
			"id":   rule.ID.String(),
			"name": rule.Name,
		},
	}
	if user != nil {
		b["user"] = map[string]any{
			"id":              user.ID.String(),
			"name":            user.Name,
			"email":           user.Email,
			"avg_progress":    user.AvgProgress,
			"has_certificate": user.HasCertificate,
		}
	}
	if seg != nil {
		reason := ""
		if seg.ChurnReason != nil {
			reason = *seg.ChurnReason
		}
		b["segment"] = map[string]any{
			"engagement_level": string(seg.EngagementLevel),
			"engagement_score": seg.EngagementScore,
			"churn_risk":       seg.ChurnRisk,
			"churn_reason":     reason,
			"lifecycle":        string(seg.Lifecycle),
			"completion_prob":  seg.CompletionProb,
		}
	}
	return b
}
