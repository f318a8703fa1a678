package repository

// Topic is a single repository topic tag.
type Topic struct {
	Name string `json:"name"`
}

// Record describes one repository as reported by gh repo list.
// Timestamps keep the upstream format verbatim.
type Record struct {
	CreatedAt        string  `json:"createdAt"`
	Description      string  `json:"description"`
	DiskUsage        uint64  `json:"diskUsage"`
	Identifier       string  `json:"id"`
	Name             string  `json:"name"`
	PushedAt         string  `json:"pushedAt"`
	RepositoryTopics []Topic `json:"repositoryTopics"`
	SSHURL           string  `json:"sshUrl"`
	StargazerCount   uint64  `json:"stargazerCount"`
	UpdatedAt        string  `json:"updatedAt"`
	URL              string  `json:"url"`
}

// ListItem is the subset of a Record rendered as a Markdown bullet.
type ListItem struct {
	Name        string
	URL         string
	Description string
}

// NewListItem projects a record into its list item view.
func NewListItem(record Record) ListItem {
	return ListItem{
		Name:        record.Name,
		URL:         record.URL,
		Description: record.Description,
	}
}

// ListItems projects records into list items preserving order.
func ListItems(records []Record) []ListItem {
	listItems := make([]ListItem, 0, len(records))
	for _, record := range records {
		listItems = append(listItems, NewListItem(record))
	}
	return listItems
}

// TopicNames returns the topic names attached to the record.
func (record Record) TopicNames() []string {
	if len(record.RepositoryTopics) == 0 {
		return nil
	}
	topicNames := make([]string, 0, len(record.RepositoryTopics))
	for _, topic := range record.RepositoryTopics {
		topicNames = append(topicNames, topic.Name)
	}
	return topicNames
}
