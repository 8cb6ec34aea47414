package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probuild/internal/apperr"
	"probuild/internal/models"
)

func dep(status, prereq string, kind models.DependencyType) models.JobStatusDependency {
	return models.JobStatusDependency{StatusKey: status, PrerequisiteKey: prereq, DependencyType: kind}
}

func TestValidateDependencySet(t *testing.T) {
	known := map[string]bool{"qa_check": true, "qa_recheck": true, "install": true}

	assert.NoError(t, ValidateDependencySet("qa_recheck", nil, known))
	assert.NoError(t, ValidateDependencySet("qa_recheck", []models.JobStatusDependency{
		dep("qa_recheck", "qa_check", models.DependencyMandatory),
	}, known))

	assert.ErrorIs(t, ValidateDependencySet("missing", nil, known), apperr.ErrNotFound)

	bad := [][]models.JobStatusDependency{
		{dep("qa_recheck", "qa_recheck", models.DependencyMandatory)},
		{dep("qa_recheck", "nope", models.DependencyMandatory)},
		{dep("qa_recheck", "qa_check", models.DependencyAdvisory), dep("qa_recheck", "qa_check", models.DependencyMandatory)},
		{dep("qa_recheck", "qa_check", "sometimes")},
		{dep("qa_recheck", "", models.DependencyAdvisory)},
	}
	for _, deps := range bad {
		assert.ErrorIs(t, ValidateDependencySet("qa_recheck", deps, known), apperr.ErrValidation)
	}
}

func TestFindCycle(t *testing.T) {
	assert.Nil(t, FindCycle(nil))
	assert.Nil(t, FindCycle([]models.JobStatusDependency{
		dep("b", "a", models.DependencyMandatory),
		dep("c", "b", models.DependencyAdvisory),
		dep("c", "a", models.DependencyMandatory),
	}))

	cycle := FindCycle([]models.JobStatusDependency{
		dep("a", "b", models.DependencyMandatory),
		dep("b", "c", models.DependencyAdvisory),
		dep("c", "a", models.DependencyMandatory),
	})
	require.NotNil(t, cycle)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycle)
}

func TestReplaceDependencies(t *testing.T) {
	all := []models.JobStatusDependency{
		dep("a", "b", models.DependencyMandatory),
		dep("c", "b", models.DependencyMandatory),
	}
	got := ReplaceDependencies(all, "a", []models.JobStatusDependency{{PrerequisiteKey: "c", DependencyType: models.DependencyAdvisory}})
	assert.Equal(t, []models.JobStatusDependency{
		dep("c", "b", models.DependencyMandatory),
		dep("a", "c", models.DependencyAdvisory),
	}, got)

	assert.Equal(t, []models.JobStatusDependency{dep("c", "b", models.DependencyMandatory)}, ReplaceDependencies(all, "a", nil))
}

func TestAvailablePrerequisites(t *testing.T) {
	statuses := []*models.JobStatus{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}}
	got := AvailablePrerequisites(statuses, "b", []string{"d"})
	keys := []string{}
	for _, s := range got {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestUnmetPrerequisites(t *testing.T) {
	deps := []models.JobStatusDependency{
		dep("install", "posts_ready", models.DependencyMandatory),
		dep("install", "site_marked", models.DependencyAdvisory),
		dep("install", "panels_ready", models.DependencyMandatory),
		dep("cutting", "new_jobs", models.DependencyMandatory),
	}
	mandatory, advisory := UnmetPrerequisites(deps, "install", map[string]bool{"posts_ready": true})
	assert.Equal(t, []string{"panels_ready"}, mandatory)
	assert.Equal(t, []string{"site_marked"}, advisory)
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "qa_recheck", NormalizeKey("  QA   Recheck "))
	assert.Equal(t, "install_complete", NormalizeKey("install_complete"))
	assert.Equal(t, "", NormalizeKey("   "))

	assert.NoError(t, ValidateStatusInput("qa_recheck", "QA Recheck"))
	assert.ErrorIs(t, ValidateStatusInput("", "QA"), apperr.ErrValidation)
	assert.ErrorIs(t, ValidateStatusInput("qa-recheck", "QA"), apperr.ErrValidation)
	assert.ErrorIs(t, ValidateStatusInput("qa", " "), apperr.ErrValidation)
}
