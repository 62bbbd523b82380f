package repositories

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vidtube/backend/internal/models"
)

func TestVideoFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     models.ListQuery
		wantWhere string
		wantArgs  []any
	}{
		{name: "empty", query: models.ListQuery{}, wantWhere: ""},
		{
			name:      "owner and published",
			query:     models.ListQuery{OwnerID: "u1", PublishedOnly: true},
			wantWhere: "WHERE v.owner_id = $1 AND v.is_published",
			wantArgs:  []any{"u1"},
		},
		{
			name:      "text query is escaped",
			query:     models.ListQuery{TextQuery: "50%_off"},
			wantWhere: "WHERE (v.title ILIKE $1 OR v.description ILIKE $1)",
			wantArgs:  []any{`%50\%\_off%`},
		},
		{
			name:      "all filters",
			query:     models.ListQuery{OwnerID: "u1", PublishedOnly: true, TextQuery: "go"},
			wantWhere: "WHERE v.owner_id = $1 AND v.is_published AND (v.title ILIKE $2 OR v.description ILIKE $2)",
			wantArgs:  []any{"u1", "%go%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := videoFilter(tt.query)
			if where != tt.wantWhere {
				t.Fatalf("where = %q, want %q", where, tt.wantWhere)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Fatalf("args = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		query models.ListQuery
		want  string
	}{
		{models.ListQuery{}, "ORDER BY v.created_at DESC, v.id DESC"},
		{models.ListQuery{SortField: models.SortViews, SortDirection: models.SortAscending}, "ORDER BY v.views ASC, v.id ASC"},
		{models.ListQuery{SortField: "password_hash", SortDirection: models.SortAscending}, "ORDER BY v.created_at ASC, v.id ASC"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.query, videoSortColumns, "v.id"); got != tt.want {
			t.Errorf("orderClause(%+v) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestPageClause(t *testing.T) {
	clause, args := pageClause(models.ListQuery{Page: 3, Limit: 10}, []any{"u1"})
	if clause != "LIMIT $2 OFFSET $3" {
		t.Fatalf("clause = %q", clause)
	}
	if !reflect.DeepEqual(args, []any{"u1", 10, 20}) {
		t.Fatalf("args = %#v", args)
	}
}

func TestSortStage(t *testing.T) {
	tests := []struct {
		query models.ListQuery
		key   string
		dir   int
	}{
		{models.ListQuery{}, "createdAt", -1},
		{models.ListQuery{SortField: models.SortTitle, SortDirection: models.SortAscending}, "title", 1},
		{models.ListQuery{SortField: "$where", SortDirection: models.SortDescending}, "createdAt", -1},
	}
	for _, tt := range tests {
		want := bson.D{{Key: "$sort", Value: bson.D{{Key: tt.key, Value: tt.dir}, {Key: "_id", Value: tt.dir}}}}
		if got := sortStage(tt.query); !reflect.DeepEqual(got, want) {
			t.Errorf("sortStage(%+v) = %v, want %v", tt.query, got, want)
		}
	}
}

func TestVideoMatch(t *testing.T) {
	owner := primitive.NewObjectID()
	match := videoMatch(models.ListQuery{PublishedOnly: true, TextQuery: "a.b"}, owner)
	if len(match) != 3 {
		t.Fatalf("match = %v", match)
	}
	if match[0].Key != "owner" || match[0].Value != owner {
		t.Fatalf("owner filter = %v", match[0])
	}
	if match[1].Key != "isPublished" || match[1].Value != true {
		t.Fatalf("published filter = %v", match[1])
	}
	or, ok := match[2].Value.(bson.A)
	if match[2].Key != "$or" || !ok || len(or) != 2 {
		t.Fatalf("text filter = %v", match[2])
	}
	title := or[0].(bson.D)[0].Value.(primitive.Regex)
	if title.Pattern != `a\.b` || title.Options != "i" {
		t.Fatalf("title regex = %+v", title)
	}

	if got := videoMatch(models.ListQuery{}, primitive.NilObjectID); len(got) != 0 {
		t.Fatalf("empty query match = %v", got)
	}
}

func TestVideoListPipelinePagesBeforeJoining(t *testing.T) {
	pipeline := videoListPipeline(models.ListQuery{Page: 2, Limit: 5}, primitive.NilObjectID)
	var stages []string
	for _, stage := range pipeline {
		stages = append(stages, stage[0].Key)
	}
	want := []string{"$match", "$sort", "$skip", "$limit", "$lookup", "$unwind", "$set"}
	if !reflect.DeepEqual(stages, want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	if skip := pipeline[2][0].Value; skip != int64(5) {
		t.Fatalf("skip = %v", skip)
	}
}

func TestObjectIDRejectsMalformedIDs(t *testing.T) {
	if _, err := objectID("not-an-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("objectID error = %v, want ErrNotFound", err)
	}
	id := models.NewID()
	oid, err := objectID(id)
	if err != nil || oid.Hex() != id {
		t.Fatalf("objectID(%s) = %v, %v", id, oid, err)
	}
	if ptr, err := optionalObjectID(""); ptr != nil || err != nil {
		t.Fatalf("optionalObjectID(\"\") = %v, %v", ptr, err)
	}
}

func TestLikedVideosPipelineHidesForeignDrafts(t *testing.T) {
	actor := primitive.NewObjectID()
	pipeline := likedVideosPipeline(actor)

	var visibility bson.D
	for i, stage := range pipeline {
		if stage[0].Key == "$match" && i > 0 {
			visibility = stage[0].Value.(bson.D)
		}
	}
	if visibility == nil {
		t.Fatal("expected a visibility match after the video join")
	}
	or := visibility[0].Value.(bson.A)
	want := bson.A{
		bson.D{{Key: "likedVideo.isPublished", Value: true}},
		bson.D{{Key: "likedVideo.owner", Value: actor}},
	}
	if visibility[0].Key != "$or" || !reflect.DeepEqual(or, want) {
		t.Fatalf("visibility match = %v", visibility)
	}
}
