package criteria

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   *OutreachCriteria
		wantErr bool
		noTitle bool
	}{
		{
			name:  "recruiting with role title",
			input: &OutreachCriteria{OutreachType: Recruiting, RoleTitle: "Backend Engineer"},
		},
		{
			name:  "sales with normalized title only",
			input: &OutreachCriteria{OutreachType: Sales, NormalizedTitle: "vp of sales"},
		},
		{
			name:    "sales ignores role title",
			input:   &OutreachCriteria{OutreachType: Sales, RoleTitle: "VP of Sales"},
			wantErr: true,
			noTitle: true,
		},
		{
			name:    "unknown outreach type",
			input:   &OutreachCriteria{OutreachType: "partnerships", RoleTitle: "CTO"},
			wantErr: true,
		},
		{
			name: "unknown seniority tag",
			input: &OutreachCriteria{
				OutreachType:    Recruiting,
				RoleTitle:       "CTO",
				SeniorityLevels: []string{"overlord"},
			},
			wantErr: true,
		},
		{
			name:    "nil",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.noTitle, errors.Is(err, ErrNoTitle))
		})
	}
}

func TestTitleSelection(t *testing.T) {
	c := &OutreachCriteria{OutreachType: Sales, RoleTitle: "ignored", BuyerTitle: " Head of Sales "}
	assert.Equal(t, "Head of Sales", c.Title())
	assert.Equal(t, "Head of Sales", c.TargetTitle())

	c = &OutreachCriteria{OutreachType: Recruiting, NormalizedTitle: "software engineer"}
	assert.Equal(t, "", c.Title())
	assert.Equal(t, "software engineer", c.TargetTitle())
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t,
		[]string{"go", "kubernetes", "postgres", "react", "typescript"},
		SplitSkills("Go, Kubernetes and Postgres & React,TypeScript, go"),
	)
	assert.Equal(t, []string{"android", "ios"}, SplitSkills("Android and iOS"))
	assert.Nil(t, SplitSkills("  "))
}

func TestCloneIsDeep(t *testing.T) {
	c := &OutreachCriteria{TitleVariants: []string{"a"}}
	clone := c.Clone()
	clone.TitleVariants[0] = "b"
	assert.Equal(t, "a", c.TitleVariants[0])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	content := `
outreach_type: Recruiting
role_title: VP of Engineering
title_variants:
  - head of engineering
location: San Francisco
skills: go, kubernetes
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Recruiting, c.OutreachType)
	assert.Equal(t, "VP of Engineering", c.RoleTitle)
	assert.Equal(t, []string{"head of engineering"}, c.TitleVariants)
	assert.Equal(t, "San Francisco", c.Location)
	require.NoError(t, c.Validate())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
