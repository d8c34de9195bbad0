package mongo_fake

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/creatorhub/catalog/mongo"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database 进程内的 mongo.Database 实现，供仓储层测试使用
// 过滤条件只支持顶层字段相等匹配；Find 不解析过滤条件，按插入顺序返回全部文档并记录调用参数
type Database struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

var _ mongo.Database = (*Database)(nil)

func NewDatabase() *Database {
	return &Database{collections: make(map[string]*Collection)}
}

func (d *Database) Collection(name string) mongo.Collection {
	return d.Coll(name)
}

// Coll 返回具体类型，便于断言调用记录
func (d *Database) Coll(name string) *Collection {
	d.mu.Lock()
	defer d.mu.Unlock()

	coll, ok := d.collections[name]
	if !ok {
		coll = &Collection{}
		d.collections[name] = coll
	}
	return coll
}

// FindCall 一次 Find 调用的参数
type FindCall struct {
	Filter  interface{}
	Options []*options.FindOptions
}

type Collection struct {
	mu           sync.Mutex
	docs         []bson.M
	indexNames   []string
	uniqueFields []string
	finds        []FindCall
}

var _ mongo.Collection = (*Collection)(nil)

func (c *Collection) InsertOne(_ context.Context, document interface{}) (interface{}, error) {
	doc, err := toDocument(document)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, field := range append([]string{"_id"}, c.uniqueFields...) {
		value, ok := doc[field]
		if !ok {
			continue
		}
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing[field], value) {
				return nil, duplicateKeyError(field)
			}
		}
	}
	c.docs = append(c.docs, doc)
	return doc["_id"], nil
}

func (c *Collection) FindOne(_ context.Context, filter interface{}) mongo.SingleResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if doc := c.first(filter); doc != nil {
		return snapshot(doc)
	}
	return singleResult{err: driver.ErrNoDocuments}
}

// FindOneAndUpdate 支持 upsert 与 ReturnDocument
func (c *Collection) FindOneAndUpdate(
	_ context.Context,
	filter interface{},
	update interface{},
	opts ...*options.FindOneAndUpdateOptions,
) mongo.SingleResult {
	merged := options.MergeFindOneAndUpdateOptions(opts...)
	upsert := merged.Upsert != nil && *merged.Upsert
	returnAfter := merged.ReturnDocument != nil && *merged.ReturnDocument == options.After

	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.first(filter)
	inserted := false
	if doc == nil {
		conditions, ok := filter.(bson.M)
		if !upsert || !ok {
			return singleResult{err: driver.ErrNoDocuments}
		}
		doc = bson.M{}
		for key, value := range conditions {
			doc[key] = value
		}
		c.docs = append(c.docs, doc)
		inserted = true
	}

	before := snapshot(doc)
	if err := apply(doc, update); err != nil {
		return singleResult{err: err}
	}
	if returnAfter {
		return snapshot(doc)
	}
	if inserted {
		return singleResult{err: driver.ErrNoDocuments}
	}
	return before
}

func (c *Collection) UpdateOne(
	_ context.Context,
	filter interface{},
	update interface{},
	_ ...*options.UpdateOptions,
) (*driver.UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.first(filter)
	if doc == nil {
		return &driver.UpdateResult{}, nil
	}
	if err := apply(doc, update); err != nil {
		return nil, err
	}
	return &driver.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (c *Collection) Find(_ context.Context, filter interface{}, opts ...*options.FindOptions) (mongo.Cursor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finds = append(c.finds, FindCall{Filter: filter, Options: opts})
	docs := make([]bson.M, 0, len(c.docs))
	for _, doc := range c.docs {
		copied, err := toDocument(doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, copied)
	}
	return &cursor{docs: docs, pos: -1}, nil
}

func (c *Collection) Indexes() mongo.IndexView {
	return indexView{c: c}
}

// Finds 返回全部 Find 调用记录
func (c *Collection) Finds() []FindCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.finds)
}

// LastFind 最近一次 Find 调用
func (c *Collection) LastFind() (FindCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.finds) == 0 {
		return FindCall{}, false
	}
	return c.finds[len(c.finds)-1], true
}

func (c *Collection) IndexNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.indexNames)
}

func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func (c *Collection) first(filter interface{}) bson.M {
	for _, doc := range c.docs {
		if matches(doc, filter) {
			return doc
		}
	}
	return nil
}

type indexView struct{ c *Collection }

func (v indexView) CreateOne(_ context.Context, model driver.IndexModel) (string, error) {
	keys, ok := model.Keys.(bson.D)
	if !ok || len(keys) == 0 {
		return "", fmt.Errorf("unsupported index keys %T", model.Keys)
	}
	name := keys[0].Key
	unique := false
	if model.Options != nil {
		if model.Options.Name != nil {
			name = *model.Options.Name
		}
		unique = model.Options.Unique != nil && *model.Options.Unique
	}

	v.c.mu.Lock()
	defer v.c.mu.Unlock()

	if slices.Contains(v.c.indexNames, name) {
		return name, nil
	}
	v.c.indexNames = append(v.c.indexNames, name)
	// 只支持单字段唯一索引
	if unique && len(keys) == 1 {
		v.c.uniqueFields = append(v.c.uniqueFields, keys[0].Key)
	}
	return name, nil
}

func (v indexView) ListSpecifications(context.Context) ([]*driver.IndexSpecification, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()

	specs := make([]*driver.IndexSpecification, 0, len(v.c.indexNames))
	for _, name := range v.c.indexNames {
		specs = append(specs, &driver.IndexSpecification{Name: name})
	}
	return specs, nil
}

type singleResult struct {
	doc bson.M
	err error
}

func (r singleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	raw, err := bson.Marshal(r.doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

type cursor struct {
	docs []bson.M
	pos  int
}

func (c *cursor) Close(context.Context) error { return nil }

func (c *cursor) Next(context.Context) bool {
	c.pos++
	return c.pos < len(c.docs)
}

func (c *cursor) Decode(v interface{}) error {
	return singleResult{doc: c.docs[c.pos]}.Decode(v)
}

func (c *cursor) Err() error { return nil }

func snapshot(doc bson.M) singleResult {
	copied, err := toDocument(doc)
	return singleResult{doc: copied, err: err}
}

func matches(doc bson.M, filter interface{}) bool {
	conditions, ok := filter.(bson.M)
	if !ok {
		return false
	}
	for key, want := range conditions {
		if !reflect.DeepEqual(doc[key], want) {
			return false
		}
	}
	return true
}

func apply(doc bson.M, update interface{}) error {
	ops, ok := update.(bson.M)
	if !ok {
		return fmt.Errorf("unsupported update %T", update)
	}
	for op, payload := range ops {
		fields, ok := payload.(bson.M)
		if !ok {
			return fmt.Errorf("unsupported %s payload %T", op, payload)
		}
		switch op {
		case "$set":
			for key, value := range fields {
				normalized, err := toValue(value)
				if err != nil {
					return err
				}
				doc[key] = normalized
			}
		case "$inc":
			for key, value := range fields {
				delta, ok := value.(int64)
				if !ok {
					return fmt.Errorf("unsupported $inc value %T", value)
				}
				current, _ := doc[key].(int64)
				doc[key] = current + delta
			}
		default:
			return fmt.Errorf("unsupported update operator %s", op)
		}
	}
	return nil
}

// toDocument 经 BSON 编解码得到与驱动一致的字段类型
func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return doc, nil
}

func toValue(v interface{}) (interface{}, error) {
	doc, err := toDocument(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return doc["v"], nil
}

func duplicateKeyError(field string) error {
	return driver.WriteException{WriteErrors: []driver.WriteError{{
		Code:    11000,
		Message: "E11000 duplicate key error collection index: " + field,
	}}}
}
