package tests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-invest-bot/src/config"
	"gitlab.com/open-soft/go-invest-bot/src/model"
	"testing"
)

func TestResolveCurrentBotExisting(t *testing.T) {
	assertion := assert.New(t)

	botRepository := new(BotRepositoryMock)
	botRepository.On("GetCurrentBot").Return(&model.Bot{
		Id:      7,
		BotUuid: "8a0f4d2e-11c3-4b5a-9f00-3d2c1b0a9e8f",
	})

	currentBot := config.ResolveCurrentBot(botRepository, "8a0f4d2e-11c3-4b5a-9f00-3d2c1b0a9e8f")

	assertion.NotNil(currentBot)
	assertion.Equal(int64(7), currentBot.Id)
	botRepository.AssertNotCalled(t, "Create")
}

func TestResolveCurrentBotFirstStart(t *testing.T) {
	assertion := assert.New(t)

	botUuid := "4c1d9b2a-6e5f-4a3b-8c7d-0e9f8a7b6c5d"

	botRepository := new(BotRepositoryMock)
	// empty bots table on the first call, the created row afterwards
	botRepository.On("GetCurrentBot").Return(nil).Once()
	botRepository.On("Create", model.Bot{BotUuid: botUuid}).Return(nil)
	botRepository.On("GetCurrentBot").Return(&model.Bot{Id: 1, BotUuid: botUuid}).Once()

	currentBot := config.ResolveCurrentBot(botRepository, botUuid)

	// the re-fetched row must reach the caller, not the nil first read
	assertion.NotNil(currentBot)
	assertion.Equal(int64(1), currentBot.Id)
	assertion.Equal(botUuid, currentBot.BotUuid)
	botRepository.AssertCalled(t, "Create", model.Bot{BotUuid: botUuid})
}

func TestResolveCurrentBotCreateNotVisible(t *testing.T) {
	assertion := assert.New(t)

	botRepository := new(BotRepositoryMock)
	botRepository.On("GetCurrentBot").Return(nil)
	botRepository.On("Create", mock.Anything).Return(nil)

	assertion.Panics(func() {
		config.ResolveCurrentBot(botRepository, "e2b8c4d6-0a1f-4e3d-9b7c-5a6f8e0d2c4b")
	})
}
