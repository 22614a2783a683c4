package scoring

import "github.com/jonathan/skillmatch/internal/types"

// neutralPreferenceScore applies when neither side states any location,
// work-mode, or salary constraint: nothing to match, nothing to violate.
const neutralPreferenceScore = 0.7

// workModeTable is the exhaustive compatibility table between a preferred
// work mode and a job's work mode. Adjacent modes (remote-hybrid,
// hybrid-onsite) earn partial credit; remote-only against onsite-only is a
// hard mismatch in both directions.
var workModeTable = map[types.WorkMode]map[types.WorkMode]float64{
	types.WorkModeRemote: {
		types.WorkModeRemote: 1.0,
		types.WorkModeHybrid: 0.5,
		types.WorkModeOnsite: 0.0,
	},
	types.WorkModeHybrid: {
		types.WorkModeRemote: 0.5,
		types.WorkModeHybrid: 1.0,
		types.WorkModeOnsite: 0.5,
	},
	types.WorkModeOnsite: {
		types.WorkModeRemote: 0.0,
		types.WorkModeHybrid: 0.5,
		types.WorkModeOnsite: 1.0,
	},
}

// locationSubScore scores location/preference alignment as the average of
// the components both sides actually state: location, work mode, and
// salary. Missing fields are tolerated silently per the partial-data
// contract; with no stated constraints at all the score is neutral.
func locationSubScore(profile *types.Profile, job *types.JobPosting) float64 {
	var components []float64

	if job.Location != "" && len(profile.PreferredLocations) > 0 {
		if profile.PrefersLocation(job.Location) {
			components = append(components, 1.0)
		} else {
			components = append(components, 0.0)
		}
	}

	if job.WorkMode != "" && len(profile.PreferredWorkModes) > 0 {
		components = append(components, workModeCompatibility(profile.PreferredWorkModes, job.WorkMode))
	}

	if profile.SalaryFloor != nil && job.Salary != nil && job.Salary.Max > 0 {
		components = append(components, salaryCompatibility(*profile.SalaryFloor, job.Salary.Max))
	}

	if len(components) == 0 {
		return neutralPreferenceScore
	}

	sum := 0.0
	for _, c := range components {
		sum += c
	}
	return sum / float64(len(components))
}

// workModeCompatibility takes the best credit across the candidate's
// preferred modes.
func workModeCompatibility(preferred []types.WorkMode, jobMode types.WorkMode) float64 {
	row, ok := workModeTable[jobMode]
	if !ok {
		// Unknown job mode is a missing optional field, not an error.
		return neutralPreferenceScore
	}

	best := 0.0
	for _, mode := range preferred {
		if credit, ok := row[mode]; ok && credit > best {
			best = credit
		}
	}
	return best
}

// salaryCompatibility gives full credit when the job's ceiling covers the
// candidate's floor, otherwise credit proportional to how close it comes,
// floored so a salary miss alone never zeroes the preference score.
func salaryCompatibility(floor, jobMax float64) float64 {
	if floor <= 0 || jobMax >= floor {
		return 1.0
	}
	ratio := jobMax / floor
	if ratio < 0.2 {
		return 0.2
	}
	return ratio
}
