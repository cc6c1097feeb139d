package academics

// NearCapacityThreshold is the enrollment ratio a course must exceed to count as near capacity.
const NearCapacityThreshold = 0.80

// EnrollmentRatio returns enrolled/capacity, or 0 when capacity is not positive.
func EnrollmentRatio(enrolled, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(enrolled) / float64(capacity)
}

// NearCapacity reports whether the ratio strictly exceeds NearCapacityThreshold.
func NearCapacity(enrolled, capacity int) bool {
	return EnrollmentRatio(enrolled, capacity) > NearCapacityThreshold
}

// EnrollmentPercent returns the ratio as a whole percentage, rounded down.
func EnrollmentPercent(enrolled, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return enrolled * 100 / capacity
}
