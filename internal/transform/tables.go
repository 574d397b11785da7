package transform

import "skillsetl/internal/tsv"

// Stage-2 table names. Stage 3 reads these from the intermediate directory.
const (
	JobsUnusualTitles = "jobs_unusual_titles.tsv"
	JobsSkills        = "jobs_skills.tsv"
	JobsMaster        = "jobs_master.tsv"
	JobsTitles        = "jobs_titles.tsv"
	SkillsImportance  = "skills_importance.tsv"
	SkillsMaster      = "skills_master.tsv"
	JobsSkillsCount   = "jobs_skills_count.tsv"
)

var (
	UnusualTitlesTable = tsv.Table{
		Name:   JobsUnusualTitles,
		Header: []string{"onet_soc_code", "title", "description"},
	}
	SkillCountsTable = tsv.Table{
		Name:   JobsSkillsCount,
		Header: []string{"onet_soc_code", "skill_uuid", "skill_name", "count"},
	}
	JobsMasterTable = tsv.Table{
		Name:   JobsMaster,
		Header: []string{"onet_soc_code", "category_title", "description", "category_uuid"},
	}
	JobsTitlesTable = tsv.Table{
		Name:   JobsTitles,
		Header: []string{"onet_soc_code", "job_title", "job_uuid", "category_uuid"},
	}
	ImportanceTable = tsv.Table{
		Name: SkillsImportance,
		Header: []string{
			"onet_soc_code", "skill_uuid",
			"importance_value", "importance_n", "importance_stderr", "importance_lower_ci", "importance_upper_ci",
			"level_value", "level_n", "level_stderr", "level_lower_ci", "level_upper_ci",
		},
	}
	SkillsMasterTable = tsv.Table{
		Name:   SkillsMaster,
		Header: []string{"uuid", "skill_name", "description"},
	}
	JobsSkillsTable = tsv.Table{
		Name:   JobsSkills,
		Header: []string{"skill_uuid", "onet_soc_code"},
	}
)
