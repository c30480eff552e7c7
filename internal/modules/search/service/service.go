package search

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"carbook.dev/carbook/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService mirrors post writes into a meilisearch index so free-text
// content search does not hit the relational store. Tag search stays in
// SQL; this only covers post body text.
type SearchService interface {
	IndexPost(post *entity.Post, nickname string) error
	DeletePost(postID uint) error
	SearchPosts(query string) ([]PostDoc, error)
}

type PostDoc struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	Nickname  string `json:"nickname"`
	CreatedAt int64  `json:"created_at"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}

	sortable := []string{"created_at"}
	if _, err := s.client.Index("posts").UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

func (s *searchService) IndexPost(post *entity.Post, nickname string) error {
	if s.client == nil {
		return nil
	}

	doc := PostDoc{
		ID:        post.ID,
		Content:   s.sanitizer.Sanitize(post.Content),
		Nickname:  nickname,
		CreatedAt: post.CreatedAt.Unix(),
	}

	if _, err := s.client.Index("posts").AddDocuments([]PostDoc{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index post %d: %w", post.ID, err)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func (s *searchService) DeletePost(postID uint) error {
	if s.client == nil {
		return nil
	}

	if _, err := s.client.Index("posts").DeleteDocument(strconv.FormatUint(uint64(postID), 10)); err != nil {
		return fmt.Errorf("failed to delete post %d from index: %w", postID, err)
	}
	return nil
}

func (s *searchService) SearchPosts(query string) ([]PostDoc, error) {
	if s.client == nil {
		return []PostDoc{}, nil
	}

	resp, err := s.client.Index("posts").Search(query, &meilisearch.SearchRequest{
		Limit: 50,
		Sort:  []string{"created_at:desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("content search failed: %w", err)
	}

	docs := make([]PostDoc, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var doc PostDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
