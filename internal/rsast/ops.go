package rsast

// BinOp Rust 二元运算符
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Rem
	And
	Or
	BitXor
	BitAnd
	BitOr
	Shl
	Shr
	Eq
	Lt
	Le
	Ne
	Ge
	Gt
)

// 表达式优先级，数值越大结合越紧
const (
	PrecJump    = iota // return、break
	PrecAssign         // = +=，右结合
	PrecRange          // .. ..=
	PrecOr             // ||
	PrecAnd            // &&
	PrecCompare        // == != < <= > >=，不可结合
	PrecBitOr          // |
	PrecBitXor         // ^
	PrecBitAnd         // &
	PrecShift          // << >>
	PrecSum            // + -
	PrecProduct        // * / %
	PrecPrefix         // - !
	PrecPostfix        // 方法调用、函数调用
	PrecPrimary        // 字面量、路径、括号、块
)

var binOpInfo = [...]struct {
	text string
	prec int
}{
	Add:    {"+", PrecSum},
	Sub:    {"-", PrecSum},
	Mul:    {"*", PrecProduct},
	Div:    {"/", PrecProduct},
	Rem:    {"%", PrecProduct},
	And:    {"&&", PrecAnd},
	Or:     {"||", PrecOr},
	BitXor: {"^", PrecBitXor},
	BitAnd: {"&", PrecBitAnd},
	BitOr:  {"|", PrecBitOr},
	Shl:    {"<<", PrecShift},
	Shr:    {">>", PrecShift},
	Eq:     {"==", PrecCompare},
	Lt:     {"<", PrecCompare},
	Le:     {"<=", PrecCompare},
	Ne:     {"!=", PrecCompare},
	Ge:     {">=", PrecCompare},
	Gt:     {">", PrecCompare},
}

func (op BinOp) String() string {
	if op < 0 || int(op) >= len(binOpInfo) {
		return "?"
	}
	return binOpInfo[op].text
}

// Precedence 返回运算符优先级
func (op BinOp) Precedence() int {
	if op < 0 || int(op) >= len(binOpInfo) {
		return PrecPrimary
	}
	return binOpInfo[op].prec
}

// AssignText 复合赋值形式，如 +=
func (op BinOp) AssignText() string {
	return op.String() + "="
}

// Compound 判断运算符能否组成复合赋值（逻辑运算与比较不能）
func (op BinOp) Compound() bool {
	switch op {
	case And, Or, Eq, Lt, Le, Ne, Ge, Gt:
		return false
	}
	return op >= 0 && int(op) < len(binOpInfo)
}

// LookupBinOp 按文本查找二元运算符
func LookupBinOp(text string) (BinOp, bool) {
	for op, info := range binOpInfo {
		if info.text == text {
			return BinOp(op), true
		}
	}
	return 0, false
}

// UnOp Rust 一元运算符
type UnOp int

const (
	Neg UnOp = iota
	Not
)

func (op UnOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	}
	return "?"
}

// Precedence 返回表达式的优先级，决定打印时是否需要加括号
func Precedence(x Expr) int {
	switch x := x.(type) {
	case *ReturnExpr, *BreakExpr, *ContinueExpr:
		return PrecJump
	case *AssignExpr, *AssignOpExpr:
		return PrecAssign
	case *RangeExpr:
		return PrecRange
	case *BinaryExpr:
		return x.Op.Precedence()
	case *UnaryExpr:
		return PrecPrefix
	case *MethodCallExpr, *CallExpr:
		return PrecPostfix
	}
	return PrecPrimary
}
