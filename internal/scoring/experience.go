package scoring

// experienceSubScore scores experience fit: full credit at or above the
// job minimum, otherwise linearly scaled toward 0 at zero years.
func experienceSubScore(profileYears, requiredYears float64) float64 {
	if requiredYears <= 0 {
		return 1.0
	}
	if profileYears >= requiredYears {
		return 1.0
	}
	if profileYears <= 0 {
		return 0.0
	}
	return profileYears / requiredYears
}
