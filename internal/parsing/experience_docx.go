package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/docx"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	emDash          = "—"
	headerSeparator = " - "
	bulletCutset    = "-• "
)

// decodeDocxExperience splits experience paragraphs into jobs at
// "Role — Company" header lines. Paragraph styles are not consulted.
func decodeDocxExperience(paras []docx.Paragraph) []types.JobRecord {
	jobs := []types.JobRecord{}
	job := newJob()

	for _, p := range paras {
		line := p.Text
		switch {
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			if bullet := strings.TrimSpace(strings.TrimLeft(line, bulletCutset)); bullet != "" {
				job.Bullets = append(job.Bullets, bullet)
			}
		case strings.Contains(line, emDash) || strings.Contains(line, headerSeparator):
			if !job.IsEmpty() {
				jobs = append(jobs, job)
				job = newJob()
			}
			parts := splitHeader(line)
			job.Role = parts[0]
			if len(parts) > 1 {
				job.Company = parts[1]
			}
		case line != "":
			job.Bullets = append(job.Bullets, line)
		}
	}

	if !job.IsEmpty() {
		jobs = append(jobs, job)
	}
	return jobs
}

func newJob() types.JobRecord {
	return types.JobRecord{Bullets: []string{}}
}

// splitHeader splits a header line on hyphens and em-dashes and trims each
// part. Callers use only the first two parts.
func splitHeader(line string) []string {
	parts := strings.Split(strings.ReplaceAll(line, emDash, "-"), "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
