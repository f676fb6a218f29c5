package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// textChunkLines is the buffer size at which a closing line ends a job.
	textChunkLines = 5
	// MaxTextBullets caps bullets per job decoded from plain text.
	MaxTextBullets = 6
)

// decodeTextExperience groups plain experience lines into jobs. A line
// ending in a period or containing a hyphen closes the buffer once it
// holds textChunkLines lines. Only the role and bullets are filled.
func decodeTextExperience(lines []string) []types.JobRecord {
	var chunks [][]string
	var buf []string
	for _, line := range lines {
		buf = append(buf, line)
		if isClosingLine(line) && len(buf) >= textChunkLines {
			chunks = append(chunks, buf)
			buf = nil
		}
	}
	if len(buf) > 0 {
		chunks = append(chunks, buf)
	}

	jobs := make([]types.JobRecord, 0, len(chunks))
	for _, chunk := range chunks {
		jobs = append(jobs, textJob(chunk))
	}
	return jobs
}

func isClosingLine(line string) bool {
	return strings.HasSuffix(line, ".") || strings.Contains(line, "-")
}

func textJob(chunk []string) types.JobRecord {
	job := types.JobRecord{Bullets: []string{}}
	if len(chunk) == 0 {
		return job
	}
	job.Role = chunk[0]
	for _, line := range chunk[1:] {
		if line == "" || isUpperLine(line) {
			continue
		}
		job.Bullets = append(job.Bullets, line)
		if len(job.Bullets) == MaxTextBullets {
			break
		}
	}
	return job
}

// isUpperLine reports whether line has at least one upper-case letter and
// no lower-case or title-case letters, so "AWS, GCP" is upper and "2020" is not.
func isUpperLine(line string) bool {
	cased := false
	for _, r := range line {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
