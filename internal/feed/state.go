package feed

import "github.com/SonGokuFan1996/NeuroNet/internal/models"

// FeedUIState — неизменяемый снапшот ленты.
// Слайсы внутри снапшота не правятся на месте: каждое изменение строит новые.
type FeedUIState struct {
	Posts        []models.Post
	Stories      []models.Story
	IsLoading    bool
	ErrorMessage *string
	IsPremium    bool

	ShowStories            bool
	IsVideoAutoplayEnabled bool
	IsMockInterfaceEnabled bool
	IsFakePremiumEnabled   bool

	ActivePostID          *int64
	ActivePostComments    []models.Comment
	IsCommentSheetVisible bool
}

// initialState — состояние до первой загрузки: лента грузится, истории показываются.
func initialState() FeedUIState {
	return FeedUIState{
		Posts:              []models.Post{},
		Stories:            []models.Story{},
		ActivePostComments: []models.Comment{},
		IsLoading:          true,
		ShowStories:        true,
	}
}

// Post возвращает пост с данным id из снапшота.
func (s FeedUIState) Post(id int64) (models.Post, bool) {
	for _, p := range s.Posts {
		if p.HasID(id) {
			return p, true
		}
	}

	return models.Post{}, false
}

// maxPostID — наибольший id среди постов (0, если id нет ни у одного).
func (s FeedUIState) maxPostID() int64 {
	var top int64
	for _, p := range s.Posts {
		if p.ID != nil && *p.ID > top {
			top = *p.ID
		}
	}

	return top
}

func (s FeedUIState) maxCommentID() int64 {
	var top int64
	for _, c := range s.ActivePostComments {
		if c.ID != nil && *c.ID > top {
			top = *c.ID
		}
	}

	return top
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
