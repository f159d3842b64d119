package mqtt

import "fmt"

// Topic prefixes for the Ember Home event mirror.
//
// Mirrored events use the flat scheme: emberhome/event/{type}/{source}
const (
	// TopicPrefix is the base for all Ember Home topics.
	TopicPrefix = "emberhome"

	// TopicPrefixSystem is the base for system status topics.
	TopicPrefixSystem = "emberhome/system"
)

// EventTopic returns the topic an event of the given type and source is
// mirrored to.
//
// Example: emberhome/event/motion_detected/sensor-hall-1
func EventTopic(eventType, source string) string {
	return fmt.Sprintf("%s/event/%s/%s", TopicPrefix, eventType, source)
}

// StatusTopic returns the online/offline status topic for a client.
//
// Example: emberhome/system/status/emberhome-core
func StatusTopic(clientID string) string {
	return fmt.Sprintf("%s/status/%s", TopicPrefixSystem, clientID)
}
