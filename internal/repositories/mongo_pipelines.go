package repositories

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vidtube/backend/internal/models"
)

// Collection names shared by the Mongo repositories and index bootstrap.
const (
	usersCollection         = "users"
	sessionsCollection      = "sessions"
	videosCollection        = "videos"
	commentsCollection      = "comments"
	tweetsCollection        = "tweets"
	likesCollection         = "likes"
	subscriptionsCollection = "subscriptions"
	playlistsCollection     = "playlists"
)

var mongoSortKeys = map[string]string{
	models.SortCreatedAt: "createdAt",
	models.SortUpdatedAt: "updatedAt",
	models.SortTitle:     "title",
	models.SortViews:     "views",
	models.SortDuration:  "duration",
}

// sortStage orders by the whitelisted field with _id as tie breaker.
func sortStage(q models.ListQuery) bson.D {
	key, ok := mongoSortKeys[q.SortField]
	if !ok {
		key = "createdAt"
	}
	dir := int(q.SortDirection)
	if dir == 0 {
		dir = int(models.SortDescending)
	}
	return bson.D{{Key: "$sort", Value: bson.D{{Key: key, Value: dir}, {Key: "_id", Value: dir}}}}
}

func pageStages(q models.ListQuery) []bson.D {
	return []bson.D{
		{{Key: "$skip", Value: int64(q.Skip())}},
		{{Key: "$limit", Value: int64(q.Limit)}},
	}
}

// ownerSummaryFields projects the reduced public shape of a joined user document.
func ownerSummaryFields(path string) bson.D {
	return bson.D{
		{Key: "_id", Value: path + "._id"},
		{Key: "username", Value: path + ".username"},
		{Key: "fullName", Value: path + ".fullName"},
		{Key: "avatar", Value: path + ".avatar"},
	}
}

// joinOwnerStages attaches ownerDetails from the users collection using localField.
func joinOwnerStages(localField string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ownerDetails"},
		}}},
		{{Key: "$unwind", Value: "$ownerDetails"}},
		{{Key: "$set", Value: bson.D{{Key: "ownerDetails", Value: ownerSummaryFields("$ownerDetails")}}}},
	}
}

// videoMatch translates a listing query into a match document.
func videoMatch(q models.ListQuery, owner primitive.ObjectID) bson.D {
	filter := bson.D{}
	if !owner.IsZero() {
		filter = append(filter, bson.E{Key: "owner", Value: owner})
	}
	if q.PublishedOnly {
		filter = append(filter, bson.E{Key: "isPublished", Value: true})
	}
	if q.TextQuery != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.TextQuery), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}
	return filter
}

func videoListPipeline(q models.ListQuery, owner primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: videoMatch(q, owner)}},
		sortStage(q),
	}
	pipeline = append(pipeline, pageStages(q)...)
	return append(pipeline, joinOwnerStages("owner")...)
}

func videoDetailsPipeline(id primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}}
	return append(pipeline, joinOwnerStages("owner")...)
}

func commentListPipeline(q models.ListQuery, video primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "video", Value: video}}}},
		sortStage(q),
	}
	pipeline = append(pipeline, pageStages(q)...)
	return append(pipeline, joinOwnerStages("owner")...)
}

func commentDetailsPipeline(id primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}}
	return append(pipeline, joinOwnerStages("owner")...)
}

// likedVideosPipeline joins an actor's video likes to the video and its owner and drops internal fields.
// Unpublished videos of other owners are skipped.
func likedVideosPipeline(actor primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "likedBy", Value: actor},
			{Key: "video", Value: bson.D{{Key: "$exists", Value: true}, {Key: "$ne", Value: nil}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: videosCollection},
			{Key: "localField", Value: "video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "likedVideo"},
		}}},
		{{Key: "$unwind", Value: "$likedVideo"}},
		{{Key: "$match", Value: bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "likedVideo.isPublished", Value: true}},
			bson.D{{Key: "likedVideo.owner", Value: actor}},
		}}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "likedVideo.owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$likedVideo._id"},
			{Key: "title", Value: "$likedVideo.title"},
			{Key: "description", Value: "$likedVideo.description"},
			{Key: "videoFile", Value: "$likedVideo.videoFile"},
			{Key: "thumbnail", Value: "$likedVideo.thumbnail"},
			{Key: "duration", Value: "$likedVideo.duration"},
			{Key: "createdAt", Value: "$likedVideo.createdAt"},
			{Key: "likedAt", Value: "$createdAt"},
			{Key: "ownerDetails", Value: ownerSummaryFields("$owner")},
		}}},
	}
}

// channelVideoTotalsPipeline sums video count and views for an owner. No output documents means zero videos.
func channelVideoTotalsPipeline(owner primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideos", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalViews", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}
}

// channelLikeTotalsPipeline counts likes across every video of an owner.
func channelLikeTotalsPipeline(owner primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: likesCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "video"},
			{Key: "as", Value: "likes"},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideoLikes", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$likes"}}}}},
		}}},
	}
}

func playlistsByOwnerPipeline(owner primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	pipeline = append(pipeline, joinOwnerStages("owner")...)
	return append(pipeline, bson.D{{Key: "$set", Value: bson.D{
		{Key: "totalVideos", Value: bson.D{{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$videos", bson.A{}}}}}}},
	}}})
}

// membersPipeline lists the users on the other side of a subscription.
// matchField selects the known side and memberField the side to join.
func membersPipeline(matchField, memberField string, id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: matchField, Value: id}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: memberField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "member"},
		}}},
		{{Key: "$unwind", Value: "$member"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$member._id"},
			{Key: "username", Value: "$member.username"},
			{Key: "fullName", Value: "$member.fullName"},
			{Key: "avatar", Value: "$member.avatar"},
			{Key: "subscribedAt", Value: "$createdAt"},
		}}},
	}
}

// watchHistoryPipeline expands a user's history entries into joined videos, keeping stored order.
func watchHistoryPipeline(user primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: user}}}},
		{{Key: "$unwind", Value: "$watchHistory"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: videosCollection},
			{Key: "localField", Value: "watchHistory.video"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "video"},
		}}},
		{{Key: "$unwind", Value: "$video"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$video._id"},
			{Key: "owner", Value: "$video.owner"},
			{Key: "title", Value: "$video.title"},
			{Key: "description", Value: "$video.description"},
			{Key: "videoFile", Value: "$video.videoFile"},
			{Key: "thumbnail", Value: "$video.thumbnail"},
			{Key: "duration", Value: "$video.duration"},
			{Key: "views", Value: "$video.views"},
			{Key: "isPublished", Value: "$video.isPublished"},
			{Key: "createdAt", Value: "$video.createdAt"},
			{Key: "updatedAt", Value: "$video.updatedAt"},
			{Key: "watchedAt", Value: "$watchHistory.watchedAt"},
		}}},
	}
	return append(pipeline, joinOwnerStages("owner")...)
}
