// Package content holds the static topic-keyed corpus of post texts and the
// random selector over it.
package content

import (
	"fmt"
	"math/rand"
	"sort"
)

// UnknownTopicError is returned by Select and ValidateTopics for a topic key
// absent from the corpus.
type UnknownTopicError struct {
	Topic string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %q", e.Topic)
}

// Corpus is an immutable mapping from topic key to a non-empty list of post
// texts. It is read-only after construction; Select never mutates it.
type Corpus struct {
	topics map[string][]string
	all    []string
	rng    *rand.Rand
}

// New builds a Corpus from the given topic map. The flattened item list is
// precomputed in deterministic topic order so that selection without a topic
// is uniform over every item, not uniform per topic.
func New(topics map[string][]string, rng *rand.Rand) *Corpus {
	keys := make([]string, 0, len(topics))
	for key := range topics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var all []string
	for _, key := range keys {
		all = append(all, topics[key]...)
	}

	return &Corpus{topics: topics, all: all, rng: rng}
}

// Select returns one random post text. With a non-empty topic it picks
// uniformly from that topic's list; with an empty topic it picks uniformly
// from the union of all topics.
func (c *Corpus) Select(topic string) (string, error) {
	if topic != "" {
		items, ok := c.topics[topic]
		if !ok {
			return "", &UnknownTopicError{Topic: topic}
		}
		return items[c.rng.Intn(len(items))], nil
	}
	return c.all[c.rng.Intn(len(c.all))], nil
}

// Topics returns the topic keys present in the corpus, sorted.
func (c *Corpus) Topics() []string {
	keys := make([]string, 0, len(c.topics))
	for key := range c.topics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ValidateTopics checks that every configured active topic exists in the
// corpus. Unknown keys are a configuration error, caught at startup so the
// scheduler never depends on runtime fallbacks.
func (c *Corpus) ValidateTopics(topics []string) error {
	for _, topic := range topics {
		if _, ok := c.topics[topic]; !ok {
			return fmt.Errorf("configured topic is not in the corpus: %w", &UnknownTopicError{Topic: topic})
		}
	}
	return nil
}
