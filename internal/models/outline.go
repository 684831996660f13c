package models

// Topic is one main topic of an AI-produced summary outline.
type Topic struct {
	MainTopic   string       `json:"main_topic"`
	SubSections []SubSection `json:"sub_sections"`
}

// SubSection is a row of a topic table. Value may contain inline color tags.
type SubSection struct {
	Key    string `json:"key"`
	SubKey string `json:"sub_key"`
	Value  string `json:"value"`
}

// Outline is the ordered list of topics.
type Outline []Topic
