package editor

import "github.com/dzakyfr/portfolio-go/internal/domain/entities/content"

// DefaultAbout is the hardcoded about record shown when the database has
// never been populated. Sections always render something.
func DefaultAbout() content.AboutInfo {
	return content.AboutInfo{
		ProfileImage:  "/profile.png",
		Name:          "M. Dzaka Al Fikri",
		Title:         "Machine Learning Engineer",
		Subtitle:      "Full Stack Developer",
		Location:      "Yogyakarta, Indonesia",
		Certification: "Certified TensorFlow Developer",
		Availability:  "Available for Full-time",
		Summary1:      "Hi! I'm a passionate Machine Learning Engineer and Full Stack Developer building intelligent, scalable solutions.",
		Summary2:      "I bring expertise in deep learning and computer vision combined with strong full-stack development skills.",
		Summary3:      "I continuously expand my skill set to stay at the forefront of technology.",
		Strengths: []content.Strength{
			{Icon: "rocket", Text: "Fast Learner"},
			{Icon: "target", Text: "Problem Solver"},
			{Icon: "handshake", Text: "Team Player"},
			{Icon: "bulb", Text: "Innovative Thinker"},
		},
		Stats: []content.Stat{
			{Value: "20+", Label: "Projects", Color: "from-blue-400 to-cyan-400"},
			{Value: "19", Label: "Certificates", Color: "from-purple-400 to-pink-400"},
			{Value: "15+", Label: "Technologies", Color: "from-green-400 to-emerald-400"},
			{Value: "100%", Label: "Commitment", Color: "from-orange-400 to-red-400"},
		},
	}
}

// DefaultContact is the hardcoded contact record fallback.
func DefaultContact() content.ContactInfo {
	return content.ContactInfo{
		Email:     "dzakaalfikri@gmail.com",
		Location:  "Yogyakarta, Indonesia",
		Github:    "https://github.com/dzaka",
		Linkedin:  "https://linkedin.com/in/dzaka",
		Instagram: "https://instagram.com/dzaka",
	}
}
