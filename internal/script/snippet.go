package script

// DefaultSnippet is the code revealed at the end of every run.
const DefaultSnippet = `// Generated App Component
import { useState } from "react";

export default function App() {
  const [items, setItems] = useState([]);
  
  const addItem = (name: string) => {
    setItems(prev => [...prev, { 
      id: Date.now(), name, done: false 
    }]);
  };

  return (
    <main className="container">
      <h1>Your App</h1>
      {items.map(item => (
        <div key={item.id}>{item.name}</div>
      ))}
    </main>
  );
}`
