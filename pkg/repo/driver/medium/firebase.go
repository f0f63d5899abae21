package medium

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"aptchat/config"
	"aptchat/utilities"
)

type FirebaseModel struct {
	fcmClient *messaging.Client
}

var firebaseObj *FirebaseModel

func GetFirebaseClient() *FirebaseModel {
	return firebaseObj
}

func InitFirebase(ctx context.Context, conf *config.AptchatConfModel) error {
	opt := option.WithCredentialsFile(conf.Firebase.Path)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("failed to created new app with config path %s: %w", conf.Firebase.Path, err)
	}

	fcmClient, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("failed to created new messaging client: %w", err)
	}

	firebaseObj = &FirebaseModel{fcmClient: fcmClient}

	return nil
}

// PushMessageToClient delivers msg to all of a user's registered devices
func (fb *FirebaseModel) PushMessageToClient(ctx context.Context, receiver string, msg messaging.Message, deviceIDs []string) error {
	log := utilities.NewLoggerWithFields(
		"firebase.PushMessageToClient", map[string]interface{}{
			"user": receiver,
		},
	)

	var messages []*messaging.Message
	for _, deviceID := range deviceIDs {
		newMsg := msg
		newMsg.Token = deviceID
		messages = append(messages, &newMsg)
	}

	if len(messages) == 0 {
		return nil
	}

	resp, err := fb.fcmClient.SendEach(ctx, messages)
	if err != nil {
		return err
	}

	if resp.FailureCount > 0 {
		for _, errResp := range resp.Responses {
			if errResp != nil && errResp.Error != nil {
				log.WithError(errResp.Error).Errorf("failed to push firebase notification to %s", receiver)
			}
		}
	}

	log.Debugf("firebase notification pushed to %s for %d device IDs", receiver, len(deviceIDs))

	return nil
}
