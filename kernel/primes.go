package kernel

// IsPrime reports whether n is prime by trial division up to floor(sqrt(n)).
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	// i <= n/i is i*i <= n without overflowing near math.MaxInt.
	for i := 2; i <= n/i; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// CountPrimes returns how many primes lie in [2, limit].
func CountPrimes(limit int) int {
	return countPrimesIn(2, limit)
}

// countPrimesIn counts primes in the closed range [lo, hi].
func countPrimesIn(lo, hi int) int {
	count := 0
	for i := max(lo, 2); i <= hi; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}
