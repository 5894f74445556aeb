package feed

import "github.com/SonGokuFan1996/NeuroNet/internal/models"

// TherapyBotAvatar — аватар системного бота историй.
const TherapyBotAvatar = "https://api.dicebear.com/7.x/bottts/svg?seed=TherapyBot&radius=50"

// AvatarURL — аватар dicebear по seed.
func AvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// MockFeedPosts — фиксированная лента мок-режима (5 постов). Каждый вызов возвращает новый слайс.
func MockFeedPosts() []models.Post {
	mk := func(id int64, user, content, tone string, likes int, image *string, community, createdAt string) models.Post {
		return models.Post{
			ID:         models.Ptr(id),
			UserID:     models.Ptr(user),
			UserAvatar: models.Ptr(AvatarURL(user)),
			Content:    content,
			Tone:       models.Ptr(tone),
			Likes:      likes,
			ImageURL:   image,
			Community:  models.Ptr(community),
			CreatedAt:  models.Ptr(createdAt),
		}
	}

	return []models.Post{
		mk(1, "DinoLover99",
			"My new weighted blanket arrived and I have ascended to a higher plane of existence. 10/10 would recommend for anxiety.",
			"/srs", 124, nil, "r/SensoryTools", "10m ago"),
		mk(2, "CodeWitch",
			"Hyperfocused on this new Android project for 6 hours straight. Forgot to drink water. Reminder to hydrate!",
			"/lh", 89, nil, "r/ADHDProgrammers", "1h ago"),
		mk(3, "ArtisticSoul",
			"Look at this texture study I did today! The colors are so soothing.",
			"/gen", 452, models.Ptr("https://picsum.photos/seed/artistic/500/400"), "r/ArtTherapy", "3h ago"),
		mk(4, "ForestWalker",
			"Found a really quiet spot in the park. No cars, just birds. Perfect for decompressing after a meltdown.",
			"/pos", 210, nil, "r/SafePlaces", "5h ago"),
		mk(5, "RetroGamer",
			"Anyone else use video game soundtracks for focus? Stardew Valley OST is saving my life right now.",
			"/gen", 333, nil, "r/MusicForFocus", "1d ago"),
	}
}

// MockStories — истории, загружаемые при создании контейнера.
func MockStories() []models.Story {
	return []models.Story{
		{ID: "1", UserID: "Therapy_Bot", UserAvatarURL: TherapyBotAvatar, ImageURL: "https://picsum.photos/400/600"},
		{ID: "2", UserID: "Alex", UserAvatarURL: AvatarURL("Alex"), ImageURL: "https://picsum.photos/401/600"},
		{ID: "3", UserID: "Sam", UserAvatarURL: AvatarURL("Sam"), ImageURL: "https://picsum.photos/402/600"},
	}
}

// mockComments — пара комментариев для шторки. Пост без id получает postID 0.
func mockComments(postID *int64) []models.Comment {
	var pid int64
	if postID != nil {
		pid = *postID
	}

	return []models.Comment{
		{ID: models.Ptr[int64](1), PostID: pid, UserID: "UserA", Content: "Totally agree!", CreatedAt: models.Ptr("10m ago"), UserAvatar: models.Ptr(AvatarURL("UserA"))},
		{ID: models.Ptr[int64](2), PostID: pid, UserID: "UserB", Content: "This helps so much.", CreatedAt: models.Ptr("1h ago"), UserAvatar: models.Ptr(AvatarURL("UserB"))},
	}
}
