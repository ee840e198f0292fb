package commit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/go-github/v62/github"
)

// FromGitHub converts hosting API commits into records. Nil entries stay nil so
// positional alignment with the input is preserved.
func FromGitHub(in []*github.RepositoryCommit) []*Record {
	out := make([]*Record, len(in))

	for i, rc := range in {
		if rc == nil {
			continue
		}

		out[i] = fromRepositoryCommit(rc)
	}

	return out
}

func fromRepositoryCommit(rc *github.RepositoryCommit) *Record {
	rec := &Record{SHA: rc.GetSHA()}

	if author := rc.GetCommit().GetAuthor(); author != nil && author.Date != nil {
		ts := author.GetDate().Time
		rec.Timestamp = &ts
	}

	for _, parent := range rc.Parents {
		if url := parent.GetURL(); url != "" {
			rec.ParentURLs = append(rec.ParentURLs, url)
		}
	}

	rec.Files = make([]File, 0, len(rc.Files))

	for _, f := range rc.Files {
		if f == nil {
			continue
		}

		rec.Files = append(rec.Files, File{
			Filename: f.GetFilename(),
			Patch:    f.GetPatch(),
			HasPatch: f.Patch != nil,
		})
	}

	return rec
}

// Decode reads a JSON array of hosting API commit payloads. Elements may be
// null.
func Decode(r io.Reader) ([]*Record, error) {
	var payload []*github.RepositoryCommit

	err := json.NewDecoder(r).Decode(&payload)
	if err != nil {
		return nil, fmt.Errorf("decode commits: %w", err)
	}

	return FromGitHub(payload), nil
}
