package join

import (
	"testing"

	"jobboard/internal/store"

	"github.com/stretchr/testify/assert"
)

func doc(id string, kv ...any) store.Document {
	d := store.Document{ID: id, Data: map[string]any{}}
	for i := 0; i+1 < len(kv); i += 2 {
		d.Data[kv[i].(string)] = kv[i+1]
	}
	return d
}

var keys = []Key{
	{Name: "job", Field: "jobID", Target: "job_posts", Default: doc("", "title", "Unknown Job")},
	{Name: "seeker", Field: "seekerID", Target: "users", Default: doc("", "name", "Unknown Applicant")},
}

func TestJoin_Resolved(t *testing.T) {
	records := map[string]map[string]store.Document{
		"job_posts": {"j1": doc("j1", "title", "Go Dev")},
		"users":     {"u1": doc("u1", "name", "Asha")},
	}

	e := Join(doc("j1_u1", "jobID", "j1", "seekerID", "u1"), records, keys)

	assert.Empty(t, e.Missing)
	assert.Equal(t, "Go Dev", e.Ref("job").String("title"))
	assert.Equal(t, "Asha", e.Ref("seeker").String("name"))
}

func TestJoin_MissingFallsBackToDefault(t *testing.T) {
	records := map[string]map[string]store.Document{
		"job_posts": {"j1": doc("j1", "title", "Go Dev")},
	}

	e := Join(doc("j1_u9", "jobID", "j1", "seekerID", "u9"), records, keys)

	assert.Equal(t, []string{"seeker"}, e.Missing)
	assert.True(t, e.IsMissing("seeker"))
	assert.False(t, e.IsMissing("job"))
	assert.Equal(t, "Unknown Applicant", e.Ref("seeker").String("name"))
	assert.Equal(t, "u9", e.Ref("seeker").ID, "placeholder keeps the dangling id")
}

func TestJoin_EmptyOrNonStringFieldIsMissing(t *testing.T) {
	records := map[string]map[string]store.Document{
		"job_posts": {"": doc("", "title", "should not match")},
	}

	e := Join(doc("a1", "jobID", "", "seekerID", []any{"u1"}), records, keys)

	assert.ElementsMatch(t, []string{"job", "seeker"}, e.Missing)
	assert.Equal(t, "Unknown Job", e.Ref("job").String("title"))
}

func TestAll_PreservesOrder(t *testing.T) {
	primaries := []store.Document{doc("b"), doc("a"), doc("c")}
	out := All(primaries, nil, nil)

	got := []string{}
	for _, e := range out {
		got = append(got, e.Primary.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestValues(t *testing.T) {
	docs := []store.Document{doc("1", "jobId", "j1"), doc("2"), doc("3", "jobId", "j2"), doc("4", "jobId", "j1")}
	assert.Equal(t, []string{"j1", "j2", "j1"}, Values(docs, "jobId"))
}
