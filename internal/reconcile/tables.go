package reconcile

import "skillsetl/internal/tsv"

// Load-ready tables. File names match the stage-2 names; only the directory
// differs.
var (
	jobsMasterOut = tsv.Table{
		Name:   "jobs_master.tsv",
		Header: []string{"uuid", "onet_soc_code", "title", "description"},
	}
	jobsTitlesOut = tsv.Table{
		Name:   "jobs_titles.tsv",
		Header: []string{"uuid", "onet_soc_code", "title", "category_uuid"},
	}
	skillCountsOut = tsv.Table{
		Name:   "jobs_skills_count.tsv",
		Header: []string{"job_uuid", "skill_uuid", "count"},
	}
	jobsSkillsOut = tsv.Table{
		Name:   "jobs_skills.tsv",
		Header: []string{"skill_uuid", "job_uuid"},
	}
	unusualTitlesOut = tsv.Table{
		Name:   "jobs_unusual_titles.tsv",
		Header: []string{"uuid", "title", "description", "job_uuid"},
	}
	importanceOut = tsv.Table{
		Name: "skills_importance.tsv",
		Header: []string{
			"job_uuid", "skill_uuid",
			"importance_value", "importance_n", "importance_stderr", "importance_lower_ci", "importance_upper_ci",
			"level_value", "level_n", "level_stderr", "level_lower_ci", "level_upper_ci",
		},
	}
	skillsMasterOut = tsv.Table{
		Name:   "skills_master.tsv",
		Header: []string{"uuid", "skill_name", "description", "count"},
	}
)

// Outputs lists every table Reconcile writes, in write order.
func Outputs() []tsv.Table {
	return []tsv.Table{
		jobsMasterOut,
		jobsTitlesOut,
		skillCountsOut,
		jobsSkillsOut,
		unusualTitlesOut,
		importanceOut,
		skillsMasterOut,
	}
}
