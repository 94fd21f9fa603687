package subscription

import "github.com/VitaminP8/linkery/graph/model"

type Manager interface {
	SubscribeLinks() (<-chan *model.Link, func())
	SubscribeVotes() (<-chan *model.Vote, func())
	PublishLink(link *model.Link)
	PublishVote(vote *model.Vote)
}
