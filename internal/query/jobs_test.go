package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJobsOrderAndConcatenation(t *testing.T) {
	jobs, err := ResolveJobs(Inputs{
		Queries:    []Pair{{Source: "q1.rq", Output: "q1.csv"}, {Source: "q2.rq"}},
		Selects:    []Pair{{Source: "s1.rq"}},
		Constructs: []Pair{{Source: "c1.rq", Output: "c1.ttl"}},
		Verify:     []string{"v1.rq"},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 5)

	assert.Equal(t, Job{Path: "q1.rq", Output: "q1.csv"}, jobs[0])
	assert.Equal(t, Job{Path: "q2.rq"}, jobs[1])
	assert.Equal(t, Job{Path: "s1.rq"}, jobs[2])
	assert.Equal(t, Job{Path: "c1.rq", Output: "c1.ttl"}, jobs[3])
	assert.Equal(t, Job{Path: "v1.rq"}, jobs[4])
}

func TestResolveJobsKeepsDuplicates(t *testing.T) {
	jobs, err := ResolveJobs(Inputs{
		Queries: []Pair{{Source: "q.rq"}, {Source: "q.rq"}},
	})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestResolveJobsEmptyIsUsageError(t *testing.T) {
	_, err := ResolveJobs(Inputs{})
	require.Error(t, err)
	assert.Equal(t, CodeMissingQuery, CodeOf(err))
	assert.True(t, IsUsageError(err))
}

func TestJobSource(t *testing.T) {
	assert.Equal(t, "q.rq", Job{Path: "q.rq"}.Source())
	assert.Equal(t, "<inline>", Job{Text: "ASK { ?s ?p ?o }"}.Source())
}
