// explore — каталог тем и подборки постов по категориям (мок-данные).
package explore

import "github.com/SonGokuFan1996/NeuroNet/internal/models"

// Trending — темы в блоке «Trending».
func Trending() []string {
	return []string{"ADHD Hacks", "Burnout Care", "Sensory Tools", "Hyperfocus", "Sleep Rituals"}
}

// Topics — плитки «Browse all» с пастельными цветами.
func Topics() []models.Category {
	return []models.Category{
		{Name: "ADHD Hacks", Color: "#FFF3E0"},
		{Name: "Safe Foods", Color: "#E0F7FA"},
		{Name: "Executive Dysfunction", Color: "#F3E5F5"},
		{Name: "Hyperfixations", Color: "#FFF9C4"},
		{Name: "Noise Cancelling", Color: "#E8F5E9"},
		{Name: "Stimming", Color: "#E3F2FD"},
	}
}

// Categories — разделы каталога.
func Categories() []models.Category {
	return []models.Category{
		{Name: "Neural Networks", Color: "#FFB7B2"},
		{Name: "Cognitive Science", Color: "#FFDAC1"},
		{Name: "Machine Learning", Color: "#B5EAD7"},
		{Name: "Neuroscience", Color: "#C7CEEA"},
	}
}

// PostsForCategory — подборка для категории; для неизвестной — один пост-заглушка.
func PostsForCategory(name string) []models.Post {
	switch name {
	case "ADHD Hacks":
		return []models.Post{
			post(101, "NeuroHacker", "https://api.dicebear.com/7.x/avataaars/svg?seed=NeuroHacker",
				"Body doubling saved my thesis! Just having someone on zoom while I work made all the difference.",
				"/gen", 1242, "r/ADHD", "2h ago"),
			post(102, "DopamineMiner", "https://api.dicebear.com/7.x/avataaars/svg?seed=Dopamine",
				"Tip: Keep a 'doom box' for cleaning. Throw everything in a box to sort later, just clear the surfaces now!",
				"/pos", 853, "r/CleaningTips", "5h ago"),
			post(103, "TimeBlindness", "",
				"Does anyone else set alarms for every step of their morning routine? Shower: 7:00, Dry off: 7:15, Dress: 7:20...",
				"/gen", 2300, "r/ADHD", "1d ago"),
		}
	case "Safe Foods":
		mac := post(201, "TexturePerson", "",
			"Mac and Cheese is the ultimate safe food. Consistent texture every time.",
			"/srs", 5000, "r/ARFID", "10m ago")
		mac.ImageURL = models.Ptr("https://picsum.photos/seed/macncheese/400/300")

		return []models.Post{
			mac,
			post(202, "NuggetLover", "",
				"Dino nuggets simply taste better than regular shapes. It's science.",
				"/j", 342, "r/SafeFoods", "3h ago"),
		}
	case "Stimming":
		cube := post(301, "FidgetSpinner99", "",
			"Just got this new infinity cube and it's so satisfying.",
			"/happy", 89, "r/Stimming", "1h ago")
		cube.VideoURL = models.Ptr("https://www.w3schools.com/html/mov_bbb.mp4")

		return []models.Post{
			cube,
			post(302, "RockingChair", "",
				"Visual stims >> anyone else love watching lava lamps for hours?",
				"/gen", 404, "r/Autism", "4h ago"),
		}
	default:
		return []models.Post{
			post(999, "MockUser", "",
				"This is a mock post for the category: "+name+". Explore and enjoy!",
				"/test", 42, "r/"+name, "Now"),
		}
	}
}

func post(id int64, user, avatar, content, tone string, likes int, community, createdAt string) models.Post {
	p := models.Post{
		ID:        models.Ptr(id),
		UserID:    models.Ptr(user),
		Content:   content,
		Tone:      models.Ptr(tone),
		Likes:     likes,
		Community: models.Ptr(community),
		CreatedAt: models.Ptr(createdAt),
	}
	if avatar != "" {
		p.UserAvatar = models.Ptr(avatar)
	}

	return p
}
